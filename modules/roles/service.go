package roles

import (
	"context"
	"fmt"

	"github.com/gcet-osf/forumctl/pkg/configuration"
	"github.com/gcet-osf/forumctl/pkg/forum"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrPermissionDenied is returned when the caller's role does not allow the
// requested grant or revoke. Nothing goes on the wire.
var ErrPermissionDenied = errors.New("You do not have permission to perform this action.")

type RoleService struct {
	client *forum.Client
	logger *logrus.Logger
}

func NewRoleService(client *forum.Client, conf *configuration.Configuration) *RoleService {
	return &RoleService{client: client, logger: conf.Logger()}
}

func (s *RoleService) allowedGlobal(session forum.Session, role forum.Role) bool {
	for _, r := range forum.AvailableGlobalRoles(session.GlobalRole()) {
		if r == role {
			return true
		}
	}
	return false
}

// GrantGlobal assigns a global role, superadmin-only.
func (s *RoleService) GrantGlobal(ctx context.Context, session forum.Session, role forum.Role, dto *GlobalRoleDTO) (string, error) {
	if !s.allowedGlobal(session, role) {
		return "", ErrPermissionDenied
	}
	userID, err := dto.Validate()
	if err != nil {
		return "", err
	}
	if err := s.client.AssignGlobalRole(ctx, role, userID, dto.UserName); err != nil {
		return "", err
	}
	s.logger.WithFields(logrus.Fields{"role": role, "user_id": userID}).Info("global role granted")
	return fmt.Sprintf("Successfully assigned %s (ID: %d) as a %s!", dto.UserName, userID, role), nil
}

// RevokeGlobal removes a global role, superadmin-only.
func (s *RoleService) RevokeGlobal(ctx context.Context, session forum.Session, role forum.Role, dto *GlobalRoleDTO) (string, error) {
	if !s.allowedGlobal(session, role) {
		return "", ErrPermissionDenied
	}
	userID, err := dto.Validate()
	if err != nil {
		return "", err
	}
	if err := s.client.RevokeGlobalRole(ctx, role, userID, dto.UserName); err != nil {
		return "", err
	}
	s.logger.WithFields(logrus.Fields{"role": role, "user_id": userID}).Info("global role revoked")
	return fmt.Sprintf("Successfully removed the %s role from %s (ID: %d).", role, dto.UserName, userID), nil
}

func allowedProject(caller forum.Role, role forum.Role) bool {
	for _, r := range forum.AvailableProjectRoles(caller) {
		if r == role {
			return true
		}
	}
	return false
}

// GrantProject assigns a project-scoped role. The caller role decides the
// offered enumeration: admins and creators manage contributors and
// maintainers, maintainers manage contributors only.
func (s *RoleService) GrantProject(ctx context.Context, caller forum.Role, role forum.Role, dto *ProjectRoleDTO) (string, error) {
	if !allowedProject(caller, role) {
		return "", ErrPermissionDenied
	}
	projectID, userID, err := dto.Validate()
	if err != nil {
		return "", err
	}
	if err := s.client.AddProjectRole(ctx, projectID, role, userID, dto.UserName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully assigned %s as a %s on project %d.", displayName(dto.UserName, userID), role, projectID), nil
}

// RevokeProject removes a project-scoped role.
func (s *RoleService) RevokeProject(ctx context.Context, caller forum.Role, role forum.Role, dto *ProjectRoleDTO) (string, error) {
	if !allowedProject(caller, role) {
		return "", ErrPermissionDenied
	}
	projectID, userID, err := dto.Validate()
	if err != nil {
		return "", err
	}
	if err := s.client.RemoveProjectRole(ctx, projectID, role, userID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully removed %s from project %d.", displayName(dto.UserName, userID), projectID), nil
}

func displayName(userName string, userID int) string {
	if userName != "" {
		return userName
	}
	return fmt.Sprintf("user %d", userID)
}
