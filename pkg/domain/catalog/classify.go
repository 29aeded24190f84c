package catalog

// Policy controls how topic tags are combined during classification.
type Policy struct {
	// IndependentTags lets a repository tagged both cloudformation and
	// terraform land in both groups. When false, cloudformation wins.
	IndependentTags  bool   `json:"independent_tags" yaml:"independent_tags"`
	CategoryProperty string `json:"category_property" yaml:"category_property"`
	DefaultCategory  string `json:"default_category" yaml:"default_category"`
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		IndependentTags:  true,
		CategoryProperty: DefaultCategoryProperty,
		DefaultCategory:  DefaultCategory,
	}
}

func (p Policy) normalized() Policy {
	if p.CategoryProperty == "" {
		p.CategoryProperty = DefaultCategoryProperty
	}
	if p.DefaultCategory == "" {
		p.DefaultCategory = DefaultCategory
	}
	return p
}

// Result is the outcome of classifying a set of repositories.
type Result struct {
	CloudFormation *Groups   `json:"cloudformation"`
	Terraform      *Groups   `json:"terraform"`
	InProgress     []Summary `json:"in_progress"`
	// Topics lists every topic seen, in first-seen order.
	Topics []string `json:"topics"`
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{
		CloudFormation: NewGroups(),
		Terraform:      NewGroups(),
		InProgress:     []Summary{},
		Topics:         []string{},
	}
}

// Classifier groups repositories by topic tag and category.
type Classifier struct {
	policy Policy
}

// NewClassifier creates a classifier for the given policy.
func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy.normalized()}
}

// Policy returns the effective policy.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Classify builds the grouped result for records. It never fails; missing
// fields fall back to their zero values.
func (c *Classifier) Classify(records []Record) *Result {
	res := NewResult()
	seen := make(map[string]struct{})

	for _, r := range records {
		for _, topic := range r.Topics {
			if _, ok := seen[topic]; !ok {
				seen[topic] = struct{}{}
				res.Topics = append(res.Topics, topic)
			}
		}

		category := r.Category(c.policy.CategoryProperty, c.policy.DefaultCategory)
		summary := Summarize(r)

		matched := false
		if r.HasTopic(TopicCloudFormation) {
			res.CloudFormation.Add(category, summary)
			matched = true
		}
		if r.HasTopic(TopicTerraform) && (c.policy.IndependentTags || !matched) {
			res.Terraform.Add(category, summary)
			matched = true
		}
		if !matched && r.HasTopic(TopicInProgress) {
			res.InProgress = append(res.InProgress, summary)
		}
	}

	res.CloudFormation.SortByName()
	res.Terraform.SortByName()
	return res
}

// Option configures a one-shot Classify call.
type Option func(*Policy)

// WithPolicy replaces the policy used by Classify.
func WithPolicy(p Policy) Option {
	return func(dst *Policy) {
		*dst = p
	}
}

// WithExclusiveTags makes cloudformation and terraform mutually exclusive.
func WithExclusiveTags() Option {
	return func(dst *Policy) {
		dst.IndependentTags = false
	}
}

// Classify groups records with the default policy adjusted by opts.
func Classify(records []Record, opts ...Option) *Result {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	return NewClassifier(p).Classify(records)
}
