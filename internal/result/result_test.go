package result

import (
	"encoding/json"
	"testing"

	apperrors "finance-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_JSONShape(t *testing.T) {
	tests := []struct {
		name     string
		result   interface{}
		expected string
	}{
		{"ok with data", Ok([]string{"a"}), `{"success":true,"data":["a"]}`},
		{"ok with message", OkMessage(1, "Account created successfully"), `{"success":true,"data":1,"message":"Account created successfully"}`},
		{"done", Done[struct{}]("Account deleted successfully"), `{"success":true,"message":"Account deleted successfully"}`},
		{"fail", Fail[[]string]("Unauthorized"), `{"success":false,"message":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
		})
	}
}

func TestFail_HasNoData(t *testing.T) {
	r := Fail[int]("Invalid amount")

	assert.False(t, r.Success)
	assert.Nil(t, r.Data)
}

func TestFailKind_KindStaysOffTheWire(t *testing.T) {
	r := FailKind[int](apperrors.KindNotFound, "Account not found")

	body, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Account not found"}`, string(body))
	assert.Equal(t, apperrors.KindNotFound, r.Kind)
}

func TestUnauthorized(t *testing.T) {
	r := Unauthorized[[]string]()

	assert.False(t, r.Success)
	assert.Equal(t, "Unauthorized", r.Message)
	assert.Equal(t, apperrors.KindUnauthorized, r.Kind)
}
