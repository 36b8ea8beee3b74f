package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
	lifecycle  service.OrgLifecycleService
}

func NewOrganizationHandler(orgService service.OrganizationService, lifecycle service.OrgLifecycleService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
		lifecycle:  lifecycle,
	}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orgType := model.OrgType(req.Type)
	if orgType == "" {
		orgType = model.OrgTypeEducation
	}

	org, err := h.orgService.Create(ctx, req.Name, req.Slug, orgType, req.OwnerUserID)
	if err != nil {
		respondError(c, err, "failed to create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	org, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to load organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}

	out := make([]dto.OrgMemberResponse, len(members))
	for i, m := range members {
		out[i] = dto.ToOrgMemberResponse(m)
	}
	c.JSON(http.StatusOK, gin.H{"members": out})
}

func (h *OrganizationHandler) Disable(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	org, err := h.lifecycle.Disable(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to disable organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) SoftDelete(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	org, err := h.lifecycle.SoftDelete(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to delete organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) HardDelete(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	if err := h.lifecycle.HardDelete(c.Request.Context(), orgID); err != nil {
		respondError(c, err, "failed to purge organization")
		return
	}

	c.Status(http.StatusNoContent)
}
