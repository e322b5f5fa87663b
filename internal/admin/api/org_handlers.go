package api

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
)

type OrgHandler struct {
	DB *gorm.DB
}

func NewOrgHandler(db *gorm.DB) *OrgHandler {
	return &OrgHandler{DB: db}
}

type CreateOrgRequest struct {
	Name         string `json:"name" validate:"required"`
	OwnerSubject string `json:"owner_subject" validate:"required"`
	OwnerEmail   string `json:"owner_email"`
	OwnerName    string `json:"owner_name"`
}

// CreateOrg bootstraps a tenant: the organization row, the owner's
// profile (created on first sight of the auth subject), and the owner
// membership.
func (h *OrgHandler) CreateOrg(ctx context.Context, c *app.RequestContext) {
	var req CreateOrgRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	var profile adminDB.Profile
	err := h.DB.Where("subject = ?", req.OwnerSubject).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = adminDB.Profile{
			Subject:     req.OwnerSubject,
			Email:       req.OwnerEmail,
			DisplayName: req.OwnerName,
		}
		err = h.DB.Create(&profile).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to resolve owner profile: " + err.Error()})
		return
	}

	org := adminDB.Organization{
		PublicID: uuid.NewString(),
		Name:     req.Name,
	}
	if result := h.DB.Create(&org); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create organization: " + result.Error.Error()})
		return
	}

	membership := adminDB.Membership{
		OrgID:     org.PublicID,
		ProfileID: profile.ID,
		Role:      "owner",
	}
	if result := h.DB.Create(&membership); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create owner membership: " + result.Error.Error()})
		return
	}

	log.Printf("Organization %s (%s) created with owner profile ID %d", org.PublicID, org.Name, profile.ID)
	c.JSON(http.StatusCreated, org)
}

func (h *OrgHandler) GetOrgs(ctx context.Context, c *app.RequestContext) {
	var orgs []adminDB.Organization
	if result := h.DB.Find(&orgs); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch organizations: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (h *OrgHandler) GetOrgByID(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var row adminDB.Organization
	if result := h.DB.Where("public_id = ?", org).First(&row); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Organization not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch organization: " + result.Error.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, row)
}
