package memory

import (
	"fmt"
	"time"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "studyhub123"

// Seeded account emails.
const (
	DemoLearnerEmail = "learner@studyhub.dev"
	DemoTutorEmail   = "tutor@studyhub.dev"
)

type demoTutor struct {
	name      string
	email     string
	bio       string
	expertise []string
	rate      float64
	rating    float64
	reviews   int
}

type demoSession struct {
	tutor       int
	title       string
	description string
	subject     string
	level       string
	startsIn    time.Duration
	duration    int
	capacity    int
	enrolled    int
}

var demoTutors = []demoTutor{
	{"Grace Hopper", DemoTutorEmail, "Compiler enthusiast.", []string{"Computer Science", "Math"}, 45, 4.9, 128},
	{"Emmy Noether", "emmy@studyhub.dev", "Abstract algebra and symmetry.", []string{"Math", "Physics"}, 40, 4.8, 86},
	{"Rosalind Franklin", "rosalind@studyhub.dev", "Structural biology.", []string{"Biology", "Chemistry"}, 35, 4.7, 52},
}

var demoSessions = []demoSession{
	{0, "Intro to Algorithms", "Big-O, sorting and searching.", "Computer Science", "Beginner", 26 * time.Hour, 90, 10, 3},
	{0, "Data Structures Deep Dive", "Trees, heaps and hash maps.", "Computer Science", "Intermediate", 50 * time.Hour, 60, 5, 4},
	{1, "Linear Algebra Basics", "Vectors, matrices and linear maps.", "Math", "Beginner", 3 * time.Hour, 60, 8, 6},
	{1, "Group Theory Workshop", "Symmetry groups by example.", "Math", "Advanced", 74 * time.Hour, 120, 6, 6},
	{1, "Classical Mechanics Review", "Newton to Lagrange in one evening.", "Physics", "Intermediate", 98 * time.Hour, 0, 12, 2},
	{2, "Cell Biology 101", "Organelles and what they do.", "Biology", "Beginner", 30 * time.Hour, 45, 15, 9},
	{2, "Organic Chemistry Mechanisms", "Arrow pushing practice.", "Chemistry", "Advanced", 122 * time.Hour, 90, 4, 3},
	{0, "Calculus Exam Prep", "Limits, derivatives and integrals.", "Math", "Intermediate", 8 * time.Hour, 60, 20, 11},
}

// SeedDemo fills the store with demo tutors, one demo learner and a spread of
// sessions at every availability tier.
func (s *Store) SeedDemo() error {
	now := s.now()

	tutorIDs := make([]string, len(demoTutors))
	for i, t := range demoTutors {
		rate := t.rate
		id, err := s.Register(domain.RoleTutor, domain.Registration{
			Name:       t.name,
			Email:      t.email,
			Password:   DemoPassword,
			Bio:        t.bio,
			Expertise:  t.expertise,
			HourlyRate: &rate,
		})
		if err != nil {
			return fmt.Errorf("seed tutor %s: %w", t.email, err)
		}
		tutorIDs[i] = id.ID
	}

	if _, err := s.Register(domain.RoleLearner, domain.Registration{
		Name:       "Ada Learner",
		Email:      DemoLearnerEmail,
		Password:   DemoPassword,
		Major:      "Mathematics",
		University: "StudyHub University",
	}); err != nil {
		return fmt.Errorf("seed learner: %w", err)
	}

	for i, d := range demoSessions {
		start := now.Add(d.startsIn).Truncate(time.Minute)
		created := now.Add(-time.Duration(len(demoSessions)-i) * time.Hour)
		students := make([]string, d.enrolled)
		for j := range students {
			students[j] = fmt.Sprintf("seed-learner-%d-%d", i, j)
		}
		t := demoTutors[d.tutor]
		rating, reviews := t.rating, t.reviews
		if _, err := s.AddSession(tutorIDs[d.tutor], domain.Session{
			Title:           d.title,
			Description:     d.description,
			Subject:         d.subject,
			Level:           d.level,
			StartTime:       &start,
			Duration:        d.duration,
			MaxParticipants: d.capacity,
			StudentIDs:      students,
			CreatedAt:       &created,
			MeetingLink:     fmt.Sprintf("https://meet.studyhub.dev/s/%d", i+1),
		}, &rating, &reviews); err != nil {
			return fmt.Errorf("seed session %q: %w", d.title, err)
		}
	}
	return nil
}
