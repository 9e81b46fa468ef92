package services

import (
	"gorm.io/gorm"

	"ojtms/models/ojt"
)

// Blend between the assignment average and the mentor score, applied
// only once a mentor score exists.
const (
	assignmentWeight = 0.8
	mentorWeight     = 0.2
)

// ParticipantKPI carries the metrics derived from a participant's raw
// attendance and submission rows. Nothing here is ever persisted on
// the participant; callers recompute from the current child data.
type ParticipantKPI struct {
	AttendanceCount    int     `json:"attendance_count"`
	AttendanceRatePct  float64 `json:"attendance_rate_pct"`
	AssignmentScoreAvg float64 `json:"assignment_score_avg"`
	FinalScore         float64 `json:"final_score"`
}

// AttendanceRate returns attended/mandatory as a percentage, or 0 when
// the batch has no mandatory events.
func AttendanceRate(attended, mandatoryEvents int) float64 {
	if mandatoryEvents <= 0 {
		return 0
	}
	return float64(attended) / float64(mandatoryEvents) * 100
}

// NormalizedScore scales a raw submission score to a weighted
// percentage of the assignment's max score. MaxScore > 0 is enforced
// at assignment creation.
func NormalizedScore(score, maxScore, weight float64) float64 {
	return score / maxScore * 100 * weight
}

// FinalScore blends the assignment average with the mentor score when
// one has been recorded; otherwise it is the assignment average alone.
func FinalScore(assignmentAvg float64, mentorScore *float64) float64 {
	if mentorScore == nil {
		return assignmentAvg
	}
	return assignmentWeight*assignmentAvg + mentorWeight*(*mentorScore)
}

// GradeFor maps a final score to the fixed letter-grade scale.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ComputeKPI derives the metrics from already-loaded child rows.
// events must be the batch's events; only mandatory ones count toward
// the attendance denominator, and only present/late records at
// mandatory events count toward the numerator.
func ComputeKPI(attendances []ojt.Attendance, events []ojt.Event, submissions []ojt.Submission, assignments map[uint]ojt.Assignment, mentorScore *float64) ParticipantKPI {
	mandatory := make(map[uint]bool, len(events))
	mandatoryCount := 0
	for _, ev := range events {
		if ev.Mandatory {
			mandatory[ev.ID] = true
			mandatoryCount++
		}
	}

	attended := 0
	for _, att := range attendances {
		if !mandatory[att.EventID] {
			continue
		}
		if att.Presence == ojt.PresencePresent || att.Presence == ojt.PresenceLate {
			attended++
		}
	}

	var sum float64
	counted := 0
	for _, sub := range submissions {
		if sub.State != ojt.SubmissionSubmitted && sub.State != ojt.SubmissionScored {
			continue
		}
		assignment, ok := assignments[sub.AssignmentID]
		if !ok {
			continue
		}
		var score float64
		if sub.Score != nil {
			score = *sub.Score
		}
		sum += NormalizedScore(score, assignment.MaxScore, assignment.Weight)
		counted++
	}

	avg := 0.0
	if counted > 0 {
		avg = sum / float64(counted)
	}

	return ParticipantKPI{
		AttendanceCount:    attended,
		AttendanceRatePct:  AttendanceRate(attended, mandatoryCount),
		AssignmentScoreAvg: avg,
		FinalScore:         FinalScore(avg, mentorScore),
	}
}

// LoadParticipantKPI fetches the participant's current child rows and
// computes the KPI from them.
func LoadParticipantKPI(db *gorm.DB, participant ojt.Participant) (ParticipantKPI, error) {
	var events []ojt.Event
	if err := db.Where("batch_id = ?", participant.BatchID).Find(&events).Error; err != nil {
		return ParticipantKPI{}, err
	}

	var attendances []ojt.Attendance
	if err := db.Where("participant_id = ?", participant.ID).Find(&attendances).Error; err != nil {
		return ParticipantKPI{}, err
	}

	var submissions []ojt.Submission
	if err := db.Where("participant_id = ?", participant.ID).Find(&submissions).Error; err != nil {
		return ParticipantKPI{}, err
	}

	var assignmentRows []ojt.Assignment
	if err := db.Where("batch_id = ?", participant.BatchID).Find(&assignmentRows).Error; err != nil {
		return ParticipantKPI{}, err
	}
	assignments := make(map[uint]ojt.Assignment, len(assignmentRows))
	for _, a := range assignmentRows {
		assignments[a.ID] = a
	}

	return ComputeKPI(attendances, events, submissions, assignments, participant.MentorScore), nil
}
