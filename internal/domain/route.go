package domain

// RouteRequirement declares the role a route demands. It is fixed when the
// routing table is built; an empty RequiredRole admits any authenticated user.
type RouteRequirement struct {
	RequiredRole Role
}
