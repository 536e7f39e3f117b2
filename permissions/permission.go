package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"resto/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var (
	roles   = []string{constant.RoleSuperAdmin, constant.RoleAdmin}
	methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
)

// Permission restricts one route pattern. Routes without an entry fall back to the longest
// matching prefix rule, and are open to every admin role when none matches.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Prefixes  []Permission `json:"prefixes"`
	Skip      bool         `json:"skip"`
}

// Normalize drops the trailing slash so /v1/admin/users and /v1/admin/users/ share one rule.
func Normalize(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}

	return path
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = Normalize(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return Normalize(rp.Path) == path && rp.Method == method
	})

	if idx != -1 {
		return r.Endpoints[idx]
	}

	var fallback Permission

	for _, prefix := range r.Prefixes {
		root := Normalize(prefix.Path)
		if path != root && !strings.HasPrefix(path, root+"/") {
			continue
		}

		if len(root) > len(fallback.Path) {
			fallback = prefix
			fallback.Path = root
		}
	}

	return fallback
}

// Parse decodes a permission table, rejecting unknown roles and methods and duplicate routes.
// Prefix rules apply to every method and must name at least one role.
func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(permissions.Endpoints))

	for i, endpoint := range permissions.Endpoints {
		if !strings.HasPrefix(endpoint.Path, "/") {
			return nil, fmt.Errorf("endpoint %d: path %q must be absolute", i, endpoint.Path)
		}

		if !slices.Contains(methods, endpoint.Method) {
			return nil, fmt.Errorf("endpoint %d: unknown method %q", i, endpoint.Method)
		}

		if err := checkRoles(endpoint); err != nil {
			return nil, err
		}

		key := endpoint.Method + " " + Normalize(endpoint.Path)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("endpoint %s declared twice", key)
		}

		seen[key] = struct{}{}
	}

	for i, prefix := range permissions.Prefixes {
		if !strings.HasPrefix(prefix.Path, "/") {
			return nil, fmt.Errorf("prefix %d: path %q must be absolute", i, prefix.Path)
		}

		if len(prefix.Permissions) == 0 {
			return nil, fmt.Errorf("prefix %s: at least one role is required", prefix.Path)
		}

		if err := checkRoles(prefix); err != nil {
			return nil, err
		}
	}

	return &permissions, nil
}

func checkRoles(p Permission) error {
	for _, role := range p.Permissions {
		if !slices.Contains(roles, role) {
			return fmt.Errorf("endpoint %s %s: unknown role %q", p.Method, p.Path, role)
		}
	}

	return nil
}

// Get loads the embedded table. A nil result makes RBAC deny every request.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
