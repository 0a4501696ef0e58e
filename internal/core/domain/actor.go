package domain

// Role is the caller's role as supplied by the authenticated-request layer.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBanca    Role = "BANCA"
	RoleVentana  Role = "VENTANA"
	RoleVendedor Role = "VENDEDOR"
)

// Actor identifies who is performing an operation.
type Actor struct {
	UserID    string  `json:"userID"`
	Role      Role    `json:"role"`
	VentanaID *string `json:"ventanaID,omitempty"`
	BancaID   *string `json:"bancaID,omitempty"`
}

// IsAdmin reports whether the actor holds the elevated role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActOnVentana reports whether the actor may mutate data of the given ventana.
// Admins may act on any ventana, banca operators on ventanas of their banca,
// ventana operators only on their own.
func (a Actor) CanActOnVentana(ventanaID *string, bancaID *string) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleBanca:
		return a.BancaID != nil && bancaID != nil && *a.BancaID == *bancaID
	case RoleVentana:
		return a.VentanaID != nil && ventanaID != nil && *a.VentanaID == *ventanaID
	}
	return false
}

// SystemActor is used for operations triggered by the engine itself.
var SystemActor = Actor{UserID: "system", Role: RoleAdmin}
