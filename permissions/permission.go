package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleAdmin, constant.RoleArtist, constant.RoleClient}

// Permission lists the roles allowed on one chi route pattern. An empty
// list admits any authenticated caller.
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
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	return parse(permissionsData)
}

func parse(raw []byte) *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(raw, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	for i := range permissions.Endpoints {
		endpoint := &permissions.Endpoints[i]
		endpoint.Method = strings.ToUpper(endpoint.Method)

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				log.Warn().
					Str("path", endpoint.Path).
					Str("method", endpoint.Method).
					Str("role", role).
					Msg("Permission references an unknown role")
			}
		}
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
