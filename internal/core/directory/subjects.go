package directory

import "github.com/studyhub/tutoring-gateway/internal/core/domain"

// SubjectCount is one row of the popular-subjects panel.
type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int    `json:"count"`
}

// Subjects lists distinct subjects in order of first appearance.
func Subjects(sessions []domain.Session) []string {
	return distinct(sessions, func(s domain.Session) string { return s.Subject })
}

// Levels lists distinct levels in order of first appearance.
func Levels(sessions []domain.Session) []string {
	return distinct(sessions, func(s domain.Session) string { return s.Level })
}

// SubjectCounts counts sessions per subject, ordered like Subjects.
func SubjectCounts(sessions []domain.Session) []SubjectCount {
	index := make(map[string]int)
	var out []SubjectCount
	for _, s := range sessions {
		if s.Subject == "" {
			continue
		}
		i, ok := index[s.Subject]
		if !ok {
			i = len(out)
			index[s.Subject] = i
			out = append(out, SubjectCount{Subject: s.Subject})
		}
		out[i].Count++
	}
	return out
}

func distinct(sessions []domain.Session, key func(domain.Session) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range sessions {
		k := key(s)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
