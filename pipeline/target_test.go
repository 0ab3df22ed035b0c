package pipeline_test

import (
	"testing"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTarget(t *testing.T) {
	t.Parallel()

	valid := []struct {
		raw  string
		want string
	}{
		{"https://example.com/post", "https://example.com/post"},
		{"http://example.com", "http://example.com"},
		{"  https://example.com/a?b=c  ", "https://example.com/a?b=c"},
		{"example.com/post", "https://example.com/post"},
		{"localhost:8080/post", "https://localhost:8080/post"},
		{"example.com:8443/a", "https://example.com:8443/a"},
		{"HTTPS://Example.com/Post", "https://Example.com/Post"},
	}
	for _, tc := range valid {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()

			u, err := pipeline.ValidateTarget(tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.want, u.String())
		})
	}

	invalid := []string{
		"",
		"   ",
		"chrome://extensions",
		"chrome-extension://abc/popup.html",
		"edge://settings",
		"about:blank",
		"file:///home/user/page.html",
		"ftp://example.com/file",
		"https://",
		"view-source:https://example.com",
		"javascript:alert(1)",
		"data:text/html,<p>hi</p>",
		"Chrome://settings",
		"mailto:someone@example.com",
	}
	for _, raw := range invalid {
		t.Run("rejects "+raw, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.ValidateTarget(raw)

			require.Error(t, err)
			assert.Equal(t, mdclip.EINVALIDTARGET, mdclip.ErrorCode(err))
		})
	}
}

func TestValidateTarget_ExplainsRejectedSchemes(t *testing.T) {
	t.Parallel()

	_, err := pipeline.ValidateTarget("chrome://extensions")

	require.Error(t, err)
	assert.Equal(t, "cannot extract content from chrome: URLs, only http and https pages", mdclip.ErrorMessage(err))
}
