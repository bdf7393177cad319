// Package ledger provides the stock ledger engine: it reconstructs current
// stock quantity and valuation per (product, batch, location) by replaying
// the append-only inventory transaction log.
package ledger

// LocationKind discriminates the closed set of stock-holding location tags.
type LocationKind string

const (
	// KindGodown is the central warehouse.
	KindGodown LocationKind = "GODOWN"
	// KindMR is a field agent (Medical Representative) holding decentralized stock.
	KindMR LocationKind = "MR"
	// KindCustomer is an external customer; stock leaving to a customer is
	// outside the ledger, the tag exists only as a transaction role.
	KindCustomer LocationKind = "CUSTOMER"
	// KindOther covers external tags the ledger does not track.
	KindOther LocationKind = "OTHER"
)

// Location is a tagged variant identifying where stock sits.
// ID is populated for MR locations (the agent id) and carries the raw tag
// for Other locations; it is empty for Godown and Customer.
type Location struct {
	Kind LocationKind `db:"kind" json:"kind"`
	ID   string       `db:"id" json:"id,omitempty"`
}

// Godown returns the central warehouse location.
func Godown() Location { return Location{Kind: KindGodown} }

// MR returns the location of one field agent.
func MR(agentID string) Location { return Location{Kind: KindMR, ID: agentID} }

// Customer returns the external customer location.
func Customer() Location { return Location{Kind: KindCustomer} }

// Other returns a location for an unrecognized external tag.
func Other(tag string) Location { return Location{Kind: KindOther, ID: tag} }

// IsGodown reports whether l is the central warehouse.
func (l Location) IsGodown() bool { return l.Kind == KindGodown }

// IsMR reports whether l is a field agent location.
func (l Location) IsMR() bool { return l.Kind == KindMR }

// Internal reports whether the location holds ledger-tracked stock.
// Customer and Other locations are transaction roles, never positions.
func (l Location) Internal() bool {
	return l.Kind == KindGodown || l.Kind == KindMR
}

func (l Location) String() string {
	if l.ID == "" {
		return string(l.Kind)
	}
	return string(l.Kind) + ":" + l.ID
}
