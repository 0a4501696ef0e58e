package domain

// VendedorAssignment is the seller's current position in the hierarchy.
type VendedorAssignment struct {
	VendedorID string `json:"vendedorID"`
	VentanaID  string `json:"ventanaID"`
	BancaID    string `json:"bancaID"`
}

// VentanaAssignment links a ventana to its banca.
type VentanaAssignment struct {
	VentanaID string `json:"ventanaID"`
	BancaID   string `json:"bancaID"`
}

// PolicyStack holds the three commission tiers for one seller.
// Any tier may be nil when the owner has no policy configured.
type PolicyStack struct {
	User    *CommissionPolicy
	Ventana *CommissionPolicy
	Banca   *CommissionPolicy
}
