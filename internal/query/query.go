// Package query defines the external request/response shapes for a
// solve call and validates incoming requests with struct tags, the
// way jonkmatsumo-resume-customizer's internal/types validates auth
// payloads with go-playground/validator.
package query

import (
	"github.com/go-playground/validator/v10"

	"github.com/kestrel-labs/wyrmforge/internal/domain"
)

var validate = validator.New()

// Request is one solve call: the skills a build must satisfy, the
// weapon's own raw slot sizes, the sockets that must be left
// unconsumed, an optional sex filter, an optional rarity floor for
// anomaly pieces, and the raw CSV payloads for this query's anomalies
// and charms (spec.md section 6).
type Request struct {
	RequiredSkills map[string]int           `validate:"required,min=1,dive,gte=1"`
	WeaponSlots    [domain.RawSlotCount]int `validate:"dive,gte=0,lte=4"`
	FreeSlots      domain.SocketVector      `validate:"dive,gte=0"`
	Sex            domain.SexType           `validate:"omitempty,oneof=all male female"`
	RarityFloor    int                      `validate:"gte=0"`
	AnomalyCSV     []byte
	CharmCSV       []byte
}

// Validate checks the request's own fields; it cannot check that the
// required skill ids exist or stay within their max level, since that
// depends on the catalog, which the caller supplies separately via
// internal/service.
func (r Request) Validate() error {
	return validate.Struct(r)
}

// Response is the solver's answer to one Request: the ranked builds,
// the human-readable trace of what the query's own CSV ingestion
// discarded or flagged along the way plus the candidate and build
// counts, and a correlation id for tying a response back to its log
// lines.
type Response struct {
	CorrelationID string
	Builds        []AnswerView
	Log           []string
}

// AnswerView is the wire-facing shape of one build, mirroring the
// solver's Answer with its own PartView and DecorationView types, with
// a rank added for display.
type AnswerView struct {
	Rank        int
	Parts       map[domain.ArmorPart]PartView
	Decorations []DecorationView
	Score       int64
}

// PartView is one equipped piece as reported to a caller.
type PartView struct {
	ID         string
	Name       string
	IsAnomaly  bool
	OriginalID string
}

// DecorationView is one decoration placement as reported to a caller.
type DecorationView struct {
	SkillID      string
	DecorationID string
	SlotSize     int
	Count        int
}
