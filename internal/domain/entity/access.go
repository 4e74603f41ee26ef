package entity

// RemoteUser is the identity the host resolved for an incoming request.
type RemoteUser struct {
	Name       string   // Empty for anonymous requests.
	Groups     []string // Groups the host attaches, including its own pseudo groups.
	RealGroups []string // Groups returned by Authenticate.
	Error      string
}

// PackageAccess is the host's access descriptor for a package pattern.
type PackageAccess struct {
	Name      string
	Access    []string
	Publish   []string
	Unpublish []string
	Proxy     []string
}
