package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/afterschool-portal/portal/models"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	want := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)

	tests := map[string]string{
		"rfc3339":       `"2025-10-01T09:30:00Z"`,
		"unix seconds":  `1759311000`,
		"unix fraction": `1759311000.000000000`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			var ts models.Timestamp
			require.NoError(t, json.Unmarshal([]byte(in), &ts))
			require.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	t.Run("null", func(t *testing.T) {
		var n models.Notice
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"createdAt":null}`), &n))
		require.Nil(t, n.CreatedAt)
	})

	t.Run("garbage", func(t *testing.T) {
		var ts models.Timestamp
		require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
		require.Error(t, json.Unmarshal([]byte(`true`), &ts))
	})
}

func TestSignupRequest_StudentIDNo(t *testing.T) {
	data, err := json.Marshal(models.SignupRequest{Email: "t@x.com", Password: "secret1", Name: "Park", Role: "TEACHER"})
	require.NoError(t, err)
	require.JSONEq(t, `{"email":"t@x.com","password":"secret1","name":"Park","role":"TEACHER","studentIdNo":null}`, string(data))
}
