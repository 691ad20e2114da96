package ranking

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/opportunity-matcher/internal/embeddings"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// Contextual component weights
const (
	gradeWeight       = 0.30
	interestWeight    = 0.25
	skillsWeight      = 0.20
	locationWeight    = 0.10
	achievementWeight = 0.10
	deadlineWeight    = 0.05

	openGradeScore     = 0.15
	adjacentGradeScore = 0.10

	// achievementOverlapThreshold is the keyword overlap an achievement match must exceed.
	achievementOverlapThreshold = 0.1

	urgentDeadlineDays = 30
	soonDeadlineDays   = 90
)

// ContextualScore compares structured profile attributes against an opportunity.
// It returns a score in [0,1] and one reason per contributing component.
func ContextualScore(profile *types.Profile, opp *types.Opportunity, now time.Time) (float64, []string) {
	score := 0.0
	var reasons []string

	// Grade level
	switch {
	case containsGrade(opp.GradeLevels, profile.GradeLevel):
		score += gradeWeight
		reasons = append(reasons, fmt.Sprintf("Perfect grade level match (Grade %s)", profile.GradeLevel))
	case opp.OpenToAllGrades():
		score += openGradeScore
		reasons = append(reasons, "Open to all grade levels")
	case gradeAdjacent(profile.GradeLevel, opp.GradeLevels):
		score += adjacentGradeScore
		reasons = append(reasons, fmt.Sprintf("Close grade level match (Grade %s)", profile.GradeLevel))
	}

	// Interests
	if matched := matchedInterests(profile.Interests, opp.Interests); len(matched) > 0 {
		denominator := max(len(profile.Interests), len(opp.Interests))
		score += interestWeight * float64(len(matched)) / float64(denominator)
		reasons = append(reasons, "Matches your interests: "+strings.Join(matched, ", "))
	}

	// Skills
	if len(profile.Skills) > 0 {
		haystack := strings.ToLower(opp.Title + " " + opp.Description)
		var matched []string
		for _, skill := range profile.Skills {
			s := strings.ToLower(strings.TrimSpace(skill))
			if s != "" && strings.Contains(haystack, s) {
				matched = append(matched, skill)
			}
		}
		if len(matched) > 0 {
			score += skillsWeight * float64(len(matched)) / float64(len(profile.Skills))
			reasons = append(reasons, "Relevant to your skills: "+strings.Join(matched, ", "))
		}
	}

	// Location
	if isRemote(opp.Location) {
		score += locationWeight
		reasons = append(reasons, "Remote/Virtual opportunity")
	} else if locationsOverlap(profile.Location, opp.Location) {
		score += locationWeight
		reasons = append(reasons, fmt.Sprintf("Located near you (%s)", opp.Location))
	}

	// Achievements
	if len(profile.Achievements) > 0 {
		achievementKeywords := embeddings.ExtractKeywords(strings.Join(profile.Achievements, " "), embeddings.DefaultKeywordMinLength)
		oppKeywords := embeddings.ExtractKeywords(opp.Title+" "+opp.Description, embeddings.DefaultKeywordMinLength)
		overlap := embeddings.KeywordOverlapScore(achievementKeywords, oppKeywords)
		if overlap > achievementOverlapThreshold {
			score += achievementWeight * overlap
			reasons = append(reasons, "Related to your achievements")
		}
	}

	// Deadline
	if opp.Deadline != nil {
		days := daysUntil(*opp.Deadline, now)
		switch {
		case days >= 0 && days <= urgentDeadlineDays:
			score += deadlineWeight
			reasons = append(reasons, fmt.Sprintf("Urgent: deadline in %d days", days))
		case days > urgentDeadlineDays && days <= soonDeadlineDays:
			score += deadlineWeight / 2
			reasons = append(reasons, fmt.Sprintf("Deadline in %d days", days))
		}
	}

	return clamp(score, 0, 1), reasons
}
