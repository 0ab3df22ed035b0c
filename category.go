package mdclip

import "strings"

// Category is the topic a page is filed under.
type Category string

// Categories, in the order they are matched.
const (
	CategoryArchitecture Category = "architecture"
	CategoryTesting      Category = "testing"
	CategorySecurity     Category = "security"
	CategoryPerformance  Category = "performance"
	CategoryDatabase     Category = "database"
	CategoryDevOps       Category = "devops"
	CategoryFrontend     Category = "frontend"
	CategoryBackend      Category = "backend"
	CategoryMobile       Category = "mobile"
	CategoryAIML         Category = "ai_ml"
	CategoryProgramming  Category = "programming"
	CategoryGeneral      Category = "general"
)

// categoryKeywords is scanned in order; the first keyword found wins.
// Reordering either level changes classification results.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryArchitecture, []string{
		"architecture", "microservice", "design pattern", "system design",
		"domain-driven", "event-driven", "hexagonal", "monolith", "ddd",
	}},
	{CategoryTesting, []string{
		"testing", "unit test", "integration test", "test-driven", "tdd",
		"e2e", "pytest", "jest", "cypress", "playwright", "selenium",
	}},
	{CategorySecurity, []string{
		"security", "vulnerability", "authentication", "authorization",
		"encryption", "oauth", "owasp", "xss", "csrf", "exploit", "cve-",
	}},
	{CategoryPerformance, []string{
		"performance", "optimization", "optimizing", "latency", "benchmark",
		"profiling", "caching", "scalability",
	}},
	{CategoryDatabase, []string{
		"database", "sql", "postgres", "mongodb", "redis", "sqlite",
		"elasticsearch", "indexing",
	}},
	{CategoryDevOps, []string{
		"devops", "docker", "kubernetes", "k8s", "terraform", "ansible",
		"ci/cd", "jenkins", "github actions", "helm", "deployment", "cloud",
	}},
	{CategoryFrontend, []string{
		"frontend", "front-end", "react", "vue", "angular", "svelte",
		"css", "html", "tailwind", "next.js", "web component",
	}},
	{CategoryBackend, []string{
		"backend", "back-end", "rest api", "restful", "api design", "/api/",
		"graphql", "grpc", "server-side", "node.js", "nodejs", "django",
		"flask", "spring boot",
	}},
	{CategoryMobile, []string{
		"mobile", "android", "ios app", "ios development", "iphone",
		"swiftui", "kotlin", "flutter",
	}},
	{CategoryAIML, []string{
		"machine learning", "deep learning", "artificial intelligence",
		"neural network", "llm", "gpt", "openai", "gemini", "tensorflow",
		"pytorch", "transformer", "chatbot", "/ai/",
	}},
	{CategoryProgramming, []string{
		"programming", "python", "golang", "javascript", "typescript",
		"rust", "java", "c++", "c#", "ruby", "php", "algorithm",
		"data structure", "coding", "tutorial",
	}},
}

// Classify returns the category of a page from its title and URL.
// Categories are tried in declaration order, keywords in list order, and
// the title before the URL; the first substring match wins.
func Classify(title, url string) Category {
	title = strings.ToLower(title)
	url = strings.ToLower(url)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(title, kw) || strings.Contains(url, kw) {
				return c.category
			}
		}
	}
	return CategoryGeneral
}
