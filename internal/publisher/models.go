package publisher

import (
	"strings"
	"time"

	dErrors "secretario/pkg/domain-errors"
)

// Privilege is the appointed privilege of a publisher. The store encodes it
// as the lookup-table id; domain code only ever sees the typed constant.
type Privilege int

const (
	PrivilegeNone               Privilege = 0
	PrivilegeElder              Privilege = 1
	PrivilegeMinisterialServant Privilege = 2
)

// Label returns the Spanish form label used on the printed cards and in
// imported spreadsheets.
func (p Privilege) Label() string {
	switch p {
	case PrivilegeElder:
		return "Anciano"
	case PrivilegeMinisterialServant:
		return "Siervo ministerial"
	default:
		return ""
	}
}

// ParsePrivilege resolves a spreadsheet cell to a privilege. Unknown values
// map to PrivilegeNone; imports are tolerant by design.
func ParsePrivilege(label string) Privilege {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "anciano":
		return PrivilegeElder
	case "siervo ministerial":
		return PrivilegeMinisterialServant
	default:
		return PrivilegeNone
	}
}

// Type is the publisher sub-type that decides hourly reporting rules.
type Type int

const (
	TypePublisher        Type = 1
	TypeRegularPioneer   Type = 2
	TypeAuxiliaryPioneer Type = 3
)

func (t Type) Label() string {
	switch t {
	case TypeRegularPioneer:
		return "Precursor regular"
	case TypeAuxiliaryPioneer:
		return "Precursor auxiliar"
	default:
		return "Publicador"
	}
}

// ReportsHours reports whether this type records hours on the monthly
// report. Only pioneer types do.
func (t Type) ReportsHours() bool {
	return t == TypeRegularPioneer || t == TypeAuxiliaryPioneer
}

func ParseType(label string) Type {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "precursor regular":
		return TypeRegularPioneer
	case "precursor auxiliar":
		return TypeAuxiliaryPioneer
	default:
		return TypePublisher
	}
}

// GroupRole is the publisher's role within their field-service group
// (sup_grupo column: 0 none, 1 overseer, 2 assistant).
type GroupRole int

const (
	GroupRoleNone      GroupRole = 0
	GroupRoleOverseer  GroupRole = 1
	GroupRoleAssistant GroupRole = 2
)

// Sex of the publisher as recorded on the S-21 card.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Publisher is a congregation member tracked for ministry activity.
// (GivenName, FamilyName) is unique across the congregation.
type Publisher struct {
	ID           int64      `json:"id"`
	GivenName    string     `json:"given_name"`
	FamilyName   string     `json:"family_name"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	BaptismDate  *time.Time `json:"baptism_date,omitempty"`
	Group        int        `json:"group"`
	GroupRole    GroupRole  `json:"group_role"`
	Sex          Sex        `json:"sex"`
	Privilege    Privilege  `json:"privilege"`
	Type         Type       `json:"type"`
	Anointed     bool       `json:"anointed"`
	Deaf         bool       `json:"deaf"`
	Blind        bool       `json:"blind"`
	Incarcerated bool       `json:"incarcerated"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DisplayName renders the "Apellidos, Nombre" form the spreadsheets and
// printed forms use.
func (p Publisher) DisplayName() string {
	return p.FamilyName + ", " + p.GivenName
}

// SplitDisplayName parses an "Apellidos, Nombre" cell on the first comma.
// Names without a comma are treated as a bare family name.
func SplitDisplayName(display string) (given, family string) {
	family, given, found := strings.Cut(display, ",")
	family = strings.TrimSpace(family)
	if !found {
		return "", family
	}
	return strings.TrimSpace(given), family
}

// Validate enforces the identity invariant before any write.
func (p Publisher) Validate() error {
	if strings.TrimSpace(p.GivenName) == "" || strings.TrimSpace(p.FamilyName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "given name and family name are required")
	}
	return nil
}
