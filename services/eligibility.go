package services

import (
	"gorm.io/gorm"

	"ojtms/models/ojt"
)

// Eligible reports whether a completed participant's KPIs meet the
// batch thresholds. It does not look at certificates; callers exclude
// participants that already hold one.
func Eligible(batch ojt.Batch, participant ojt.Participant, kpi ParticipantKPI) bool {
	if participant.Status != ojt.ParticipantCompleted {
		return false
	}
	if kpi.AttendanceRatePct < batch.MinAttendancePct {
		return false
	}
	return kpi.FinalScore >= batch.MinScorePct
}

// EligibleParticipants returns the batch participants that meet the
// thresholds and have no certificate record yet, along with their
// computed KPIs. Pure read; nothing is mutated.
func EligibleParticipants(db *gorm.DB, batch ojt.Batch) ([]ojt.Participant, map[uint]ParticipantKPI, error) {
	var participants []ojt.Participant
	if err := db.Where("batch_id = ? AND status = ?", batch.ID, ojt.ParticipantCompleted).
		Find(&participants).Error; err != nil {
		return nil, nil, err
	}

	var certified []uint
	if err := db.Model(&ojt.Certificate{}).
		Where("participant_id IN (SELECT id FROM participants WHERE batch_id = ?)", batch.ID).
		Pluck("participant_id", &certified).Error; err != nil {
		return nil, nil, err
	}
	hasCert := make(map[uint]bool, len(certified))
	for _, id := range certified {
		hasCert[id] = true
	}

	eligible := make([]ojt.Participant, 0, len(participants))
	kpis := make(map[uint]ParticipantKPI)
	for _, p := range participants {
		if hasCert[p.ID] {
			continue
		}
		kpi, err := LoadParticipantKPI(db, p)
		if err != nil {
			return nil, nil, err
		}
		if Eligible(batch, p, kpi) {
			eligible = append(eligible, p)
			kpis[p.ID] = kpi
		}
	}
	return eligible, kpis, nil
}
