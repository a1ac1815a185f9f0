package chosung

import "sonjit/internal/pdollar"

// TemplateSet groups compiled templates by the consonant their name starts
// with. Labels keep the order in which they were first loaded.
type TemplateSet struct {
	labels  []rune
	buckets map[rune][]pdollar.Template
}

func NewTemplateSet(c *pdollar.Classifier, gestures []pdollar.Gesture) *TemplateSet {
	s := &TemplateSet{buckets: make(map[rune][]pdollar.Template)}
	for _, g := range gestures {
		s.add(c, g)
	}
	return s
}

func (s *TemplateSet) add(c *pdollar.Classifier, g pdollar.Gesture) {
	label := Label(g.Name)
	if label == 0 || len(g.Points) == 0 {
		return
	}
	if _, ok := s.buckets[label]; !ok {
		s.labels = append(s.labels, label)
	}
	s.buckets[label] = append(s.buckets[label], c.Compile(g))
}

func (s *TemplateSet) Labels() []rune {
	out := make([]rune, len(s.labels))
	copy(out, s.labels)
	return out
}

func (s *TemplateSet) Templates(label rune) []pdollar.Template {
	return s.buckets[label]
}

// Len is the number of templates across all labels.
func (s *TemplateSet) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}
