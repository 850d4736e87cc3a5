package booking

import (
	"context"

	spaceRepo "spacehive/database/repository/space"
	userRepo "spacehive/database/repository/user"
	"spacehive/models"
	"spacehive/utils"
)

// RepoUserDirectory adapts the user repository to the UserDirectory
// collaborator.
type RepoUserDirectory struct {
	repo userRepo.UserRepository
}

func NewRepoUserDirectory(repo userRepo.UserRepository) *RepoUserDirectory {
	return &RepoUserDirectory{repo: repo}
}

func (d *RepoUserDirectory) Get(ctx context.Context, userID string) (*models.User, error) {
	return d.repo.GetByID(ctx, userID)
}

// RepoSpaceCatalog adapts the space repository to the SpaceCatalog
// collaborator.
type RepoSpaceCatalog struct {
	repo spaceRepo.SpaceRepository
}

func NewRepoSpaceCatalog(repo spaceRepo.SpaceRepository) *RepoSpaceCatalog {
	return &RepoSpaceCatalog{repo: repo}
}

func (c *RepoSpaceCatalog) Get(ctx context.Context, spaceID string) (*models.Space, error) {
	return c.repo.GetByID(ctx, spaceID)
}

// ResolvePartnerID returns the partner owning the space. A space
// without a valid partner link is corrupt data and is reported as an
// internal error rather than an empty id.
func (c *RepoSpaceCatalog) ResolvePartnerID(ctx context.Context, spaceID string) (string, error) {
	space, err := c.repo.GetByID(ctx, spaceID)
	if err != nil {
		return "", err
	}
	if space.PartnerID == "" {
		return "", utils.Internal("space has no owning partner", nil)
	}
	if _, err := c.repo.GetPartner(ctx, space.PartnerID); err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return "", utils.Internal("space references a missing partner", err)
		}
		return "", err
	}
	return space.PartnerID, nil
}

func (c *RepoSpaceCatalog) PartnerForUser(ctx context.Context, userID string) (*models.Partner, error) {
	return c.repo.GetPartnerByUser(ctx, userID)
}
