package services

import "storefront-service/models"

// Surface identifies who is asking for access to a store.
type Surface int

const (
	// SurfaceStorefront is the public buyer-facing page.
	SurfaceStorefront Surface = iota
	// SurfaceDashboard is the owning merchant's own dashboard.
	SurfaceDashboard
)

// Access is the gate's verdict. A denied storefront request is fatal for
// the request; a dashboard request is never denied, it only carries a
// warning, so a merchant is never locked out of fixing their own account.
type Access struct {
	Allowed bool
	Warning string
}

// CheckAccess applies the activation flag to a surface. Only an explicit
// false denies; records without the flag predate it and stay active.
func CheckAccess(store *models.Store, surface Surface) Access {
	if store.Active() {
		return Access{Allowed: true}
	}
	if surface == SurfaceDashboard {
		return Access{Allowed: true, Warning: "inactive"}
	}
	return Access{Allowed: false, Warning: "inactive"}
}
