package votes

import (
	"plenario/pkg/repository"
)

// voteColumns selects a vote with its role derived from the distribution.
// Role is never stored; it always reflects the current distribution.
const voteColumns = `
	v.id, v.session_case_id, v.member_id,
	CASE WHEN d.rapporteur_id = v.member_id THEN 'RAPPORTEUR' ELSE 'REVIEWER' END,
	v.knowledge_type, v.preliminary_outcome, v.preliminary_template_id,
	v.merit_template_id, v.official_template_id, v.vote_text,
	v.created_at, v.updated_at`

const voteFrom = `
	FROM votes v
	LEFT JOIN distributions d ON d.session_case_id = v.session_case_id`

func scanVote(s repository.Scanner) (Vote, error) {
	var v Vote
	err := s.Scan(
		&v.ID,
		&v.SessionCaseID,
		&v.MemberID,
		&v.Role,
		&v.KnowledgeType,
		&v.PreliminaryOutcome,
		&v.PreliminaryTemplateID,
		&v.MeritTemplateID,
		&v.OfficialTemplateID,
		&v.VoteText,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}

func scanTemplate(s repository.Scanner) (Template, error) {
	var t Template
	err := s.Scan(
		&t.ID,
		&t.Kind,
		&t.Description,
		&t.AcceptText,
		&t.RejectText,
		&t.Text,
		&t.Active,
	)
	return t, err
}
