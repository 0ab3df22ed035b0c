package mdclip_test

import (
	"testing"

	"github.com/fwojciec/mdclip"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		url   string
		want  mdclip.Category
	}{
		{
			name:  "architecture is scanned before devops",
			title: "Building Microservice Architecture with Docker",
			url:   "https://x.test/a",
			want:  mdclip.CategoryArchitecture,
		},
		{
			name:  "matching is case-insensitive",
			title: "KUBERNETES in Production",
			url:   "https://x.test/a",
			want:  mdclip.CategoryDevOps,
		},
		{
			name:  "URL is matched when title has no keyword",
			title: "Notes from last week",
			url:   "https://blog.test/security/notes",
			want:  mdclip.CategorySecurity,
		},
		{
			name:  "earlier category wins even if it only matches the URL",
			title: "A React tutorial",
			url:   "https://x.test/testing/react",
			want:  mdclip.CategoryTesting,
		},
		{
			name:  "programming is the last keyword category",
			title: "C++ Tips: Part #1!",
			url:   "https://x.test/a",
			want:  mdclip.CategoryProgramming,
		},
		{
			name:  "ai keywords",
			title: "Fine-tuning an LLM on a laptop",
			url:   "https://x.test/a",
			want:  mdclip.CategoryAIML,
		},
		{
			name:  "defaults to general",
			title: "My holiday photos",
			url:   "https://x.test/a",
			want:  mdclip.CategoryGeneral,
		},
		{
			name:  "empty input",
			title: "",
			url:   "",
			want:  mdclip.CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mdclip.Classify(tt.title, tt.url))
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	t.Parallel()

	title := "Database performance testing for mobile backends"
	first := mdclip.Classify(title, "https://x.test")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, mdclip.Classify(title, "https://x.test"))
	}
	assert.Equal(t, mdclip.CategoryTesting, first)
}
