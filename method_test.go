package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiclient"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		expect  apiclient.Method
		wantErr bool
	}{
		"lower":   {in: "get", expect: apiclient.MethodGet},
		"upper":   {in: "POST", expect: apiclient.MethodPost},
		"spaces":  {in: " patch ", expect: apiclient.MethodPatch},
		"unknown": {in: "trace", wantErr: true},
		"empty":   {in: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := apiclient.ParseMethod(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestMethod_ReadOnly(t *testing.T) {
	t.Parallel()

	readOnly := map[apiclient.Method]bool{
		apiclient.MethodGet:     true,
		apiclient.MethodHead:    true,
		apiclient.MethodOptions: true,
		apiclient.MethodPost:    false,
		apiclient.MethodPut:     false,
		apiclient.MethodPatch:   false,
		apiclient.MethodDelete:  false,
	}
	require.Len(t, readOnly, len(apiclient.Methods))

	for _, m := range apiclient.Methods {
		assert.Equal(t, readOnly[m], m.ReadOnly(), m.String())
	}
	assert.Equal(t, "DELETE", apiclient.MethodDelete.Wire())
}
