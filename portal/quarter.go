package portal

import "strconv"

var quarterLabels = map[int]string{
	1: "1분기 · 1학기",
	2: "2분기 · 여름방학",
	3: "3분기 · 2학기",
	4: "4분기 · 겨울방학",
}

// QuarterLabel prefers the label sent by the backend, then the known label
// for quarter, then the bare number. It returns "" when nothing is known.
func QuarterLabel(quarter *int, label string) string {
	if label != "" {
		return label
	}
	if quarter == nil {
		return ""
	}
	if l, ok := quarterLabels[*quarter]; ok {
		return l
	}
	return strconv.Itoa(*quarter)
}
