package engine

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CategoryRule assigns a category to postings whose detected technologies
// include any of the listed ones. Rules are evaluated in order; the first
// hit wins regardless of how many technologies matched.
type CategoryRule struct {
	Name         string   `yaml:"name"`
	Technologies []string `yaml:"technologies"`
}

// TitleRule is the fallback mapping from a title keyword to a category,
// used when no technology-based rule matched.
type TitleRule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// Vocabulary is the classification data the engine operates on: alias to
// canonical-name tables, category precedence rules and experience keyword
// sets. It is plain data so deployments can extend it without a rebuild.
type Vocabulary struct {
	Technologies       map[string]string `yaml:"technologies"`
	ExtendedAliases    map[string]string `yaml:"extended_aliases"`
	Categories         []CategoryRule    `yaml:"categories"`
	TitleCategories    []TitleRule       `yaml:"title_categories"`
	DefaultCategory    string            `yaml:"default_category"`
	ManagementKeywords []string          `yaml:"management_keywords"`
	SeniorKeywords     []string          `yaml:"senior_keywords"`
	EntryKeywords      []string          `yaml:"entry_keywords"`
	Emerging           []string          `yaml:"emerging"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Technologies: map[string]string{
			"c++":              "C++",
			"cpp":              "C++",
			"python":           "Python",
			"java":             "Java",
			"javascript":       "JavaScript",
			"typescript":       "TypeScript",
			"react":            "React",
			"angular":          "Angular",
			"vue":              "Vue",
			"node.js":          "Node.js",
			"express":          "Express",
			"django":           "Django",
			"flask":            "Flask",
			"spring":           "Spring",
			"ruby":             "Ruby",
			"rails":            "Rails",
			"php":              "PHP",
			"laravel":          "Laravel",
			"sql":              "SQL",
			"mysql":            "MySQL",
			"postgresql":       "PostgreSQL",
			"mongodb":          "MongoDB",
			"redis":            "Redis",
			"docker":           "Docker",
			"kubernetes":       "Kubernetes",
			"aws":              "AWS",
			"azure":            "Azure",
			"gcp":              "Google Cloud",
			"git":              "Git",
			"jenkins":          "Jenkins",
			"ci/cd":            "CI/CD",
			"terraform":        "Terraform",
			"ansible":          "Ansible",
			"machine learning": "Machine Learning",
			"data science":     "Data Science",
			"html":             "HTML",
			"css":              "CSS",
			"sass":             "Sass",
			"less":             "Less",
			"webpack":          "Webpack",
			"babel":            "Babel",
			"rust":             "Rust",
			"golang":           "Go",
			"swift":            "Swift",
			"kotlin":           "Kotlin",
			"scala":            "Scala",
		},
		ExtendedAliases: map[string]string{
			"k8s":           "Kubernetes",
			"nodejs":        "Node.js",
			"node js":       "Node.js",
			"postgres":      "PostgreSQL",
			"mongo":         "MongoDB",
			"reactjs":       "React",
			"vuejs":         "Vue",
			"spring boot":   "Spring",
			"graphql":       "GraphQL",
			"grpc":          "gRPC",
			"kafka":         "Kafka",
			"rabbitmq":      "RabbitMQ",
			"elasticsearch": "Elasticsearch",
		},
		Categories: []CategoryRule{
			{Name: "Frontend Development", Technologies: []string{"React", "Angular", "Vue"}},
			{Name: "Backend Development", Technologies: []string{"Node.js", "Django", "Spring"}},
			{Name: "Data Science", Technologies: []string{"Machine Learning", "Data Science"}},
			{Name: "DevOps/Cloud", Technologies: []string{"AWS", "Azure", "Docker"}},
			{Name: "C++ Development", Technologies: []string{"C++"}},
			{Name: "Python Development", Technologies: []string{"Python"}},
			{Name: "Java Development", Technologies: []string{"Java"}},
		},
		TitleCategories: []TitleRule{
			{Keyword: "frontend", Category: "Frontend Development"},
			{Keyword: "backend", Category: "Backend Development"},
			{Keyword: "fullstack", Category: "Full Stack Development"},
			{Keyword: "devops", Category: "DevOps/Cloud"},
			{Keyword: "machine learning", Category: "Machine Learning"},
			{Keyword: "data", Category: "Data Science"},
		},
		DefaultCategory:    "Software Development",
		ManagementKeywords: []string{"manager", "management", "head of", "director", "chief", "vp of"},
		SeniorKeywords:     []string{"senior", "sr.", "principal", "staff engineer", "architect"},
		EntryKeywords:      []string{"junior", "entry", "intern", "graduate", "trainee"},
		Emerging: []string{
			"Rust", "Kubernetes", "Terraform", "GraphQL", "Kafka",
			"Machine Learning", "TypeScript", "gRPC", "Elasticsearch",
		},
	}
}

// LoadVocabulary reads a yaml vocabulary file. Sections absent from the file
// keep their built-in defaults, so an override file may list only the tables
// a deployment wants to change.
func LoadVocabulary(path string) (Vocabulary, error) {
	vocab := DefaultVocabulary()

	data, err := os.ReadFile(path)
	if err != nil {
		return vocab, errors.Wrap(err, "failed to read vocabulary file")
	}

	var override Vocabulary
	if err = yaml.Unmarshal(data, &override); err != nil {
		return vocab, errors.Wrap(err, "failed to parse vocabulary file")
	}

	if len(override.Technologies) > 0 {
		vocab.Technologies = override.Technologies
	}
	if len(override.ExtendedAliases) > 0 {
		vocab.ExtendedAliases = override.ExtendedAliases
	}
	if len(override.Categories) > 0 {
		vocab.Categories = override.Categories
	}
	if len(override.TitleCategories) > 0 {
		vocab.TitleCategories = override.TitleCategories
	}
	if override.DefaultCategory != "" {
		vocab.DefaultCategory = override.DefaultCategory
	}
	if len(override.ManagementKeywords) > 0 {
		vocab.ManagementKeywords = override.ManagementKeywords
	}
	if len(override.SeniorKeywords) > 0 {
		vocab.SeniorKeywords = override.SeniorKeywords
	}
	if len(override.EntryKeywords) > 0 {
		vocab.EntryKeywords = override.EntryKeywords
	}
	if len(override.Emerging) > 0 {
		vocab.Emerging = override.Emerging
	}

	return vocab, nil
}

func (v Vocabulary) isEmerging(tech string) bool {
	for _, e := range v.Emerging {
		if e == tech {
			return true
		}
	}
	return false
}
