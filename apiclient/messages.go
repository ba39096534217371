package apiclient

import "strings"

// User-facing messages.
const (
	MsgSessionExpired = "로그인이 만료되었습니다. 다시 로그인해주세요."
	MsgForbidden      = "접근 권한이 없습니다."
	MsgNotFound       = "요청한 리소스를 찾을 수 없습니다."
	MsgServerError    = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgRequestFailed  = "요청 처리 중 오류가 발생했습니다."
	MsgNetworkError   = "서버에 연결할 수 없습니다. 네트워크 연결을 확인해주세요."

	MsgEmailTaken    = "이미 가입된 이메일입니다"
	MsgEmailUnknown  = "가입되지 않은 이메일입니다"
	MsgWrongPassword = "잘못된 비밀번호입니다"
)

type messageRule struct {
	needles  []string
	friendly string
}

// Evaluated in order. "존재하지" must be tested before the bare "존재".
var messageRules = []messageRule{
	{needles: []string{"not found", "가입되지", "존재하지"}, friendly: MsgEmailUnknown},
	{needles: []string{"duplicate", "이미", "존재"}, friendly: MsgEmailTaken},
	{needles: []string{"password", "비밀번호", "incorrect"}, friendly: MsgWrongPassword},
}

// FriendlyMessage rewrites known backend texts into the portal's wording.
// Matching is on substrings of free text, so it is best effort only;
// unmatched messages are returned unchanged.
func FriendlyMessage(backend string) string {
	for _, rule := range messageRules {
		for _, needle := range rule.needles {
			if strings.Contains(backend, needle) {
				return rule.friendly
			}
		}
	}
	return backend
}
