package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/ids"
	"quadplus/api/internal/middleware"
	"quadplus/api/internal/models"
	"quadplus/api/internal/policy"
)

// projectViews prepares project snapshots for one session: customers never
// see unapproved files.
func projectViews(role models.Role, projects []models.Project) []models.Project {
	if role != models.RoleCustomer {
		return projects
	}
	for i := range projects {
		for pkg, files := range projects[i].Files {
			visible := make([]models.ProjectFile, 0, len(files))
			for _, file := range files {
				if policy.CanViewFile(role, file) {
					visible = append(visible, file)
				}
			}
			projects[i].Files[pkg] = visible
		}
	}
	return projects
}

func (h HandlerSet) ListProjects(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	visible := policy.VisibleProjects(user.Role, user.DisplayName, h.store.Projects())
	c.JSON(http.StatusOK, gin.H{"projects": projectViews(user.Role, visible)})
}

type createProjectRequest struct {
	Name     string `json:"name" binding:"required"`
	Customer string `json:"customer" binding:"required"`
}

// CreateProject is the one projects mutation open to every role, customers
// included.
func (h HandlerSet) CreateProject(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanCreateProject(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "project and customer names required"})
		return
	}

	project, err := h.store.CreateProject(req.Name, req.Customer, user.DisplayName, user.Role)
	if err != nil {
		writeStateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func projectID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return 0, false
	}
	return id, true
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h HandlerSet) UpdateProjectStatus(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelProjects)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status required"})
		return
	}

	project, err := h.store.SetProjectStatus(id, models.ProjectStatus(req.Status), user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

type updateProgressRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h HandlerSet) UpdateProjectProgress(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelProjects)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "delta required"})
		return
	}

	project, err := h.store.AdjustProgress(id, req.Delta, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

type updateRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

func (h HandlerSet) UpdateProjectRoles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanAssignRoles(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "roles required"})
		return
	}

	project, err := h.store.SetProjectRoles(id, req.Roles, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

type updatePackageRequest struct {
	Package string `json:"package" binding:"required"`
}

func (h HandlerSet) UpdateProjectPackage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanSelectPackage(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "package required"})
		return
	}
	if !ValidPackageID(req.Package) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown package"})
		return
	}

	project, err := h.store.SetProjectPackage(id, req.Package, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// UploadProjectFiles stores multipart uploads in the object store and files
// their metadata under the project's selected package.
func (h HandlerSet) UploadProjectFiles(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanUploadFile(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := h.store.ProjectByID(id)
	if err != nil {
		writeStateError(c, err)
		return
	}
	if project.DesignPackage == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no design package selected"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files required"})
		return
	}

	uploaded := make([]models.ProjectFile, 0, len(form.File["files"]))

	// Anything already stored is removed again if a later step fails, so a
	// half-finished upload leaves no orphaned objects behind.
	discardStored := func() {
		for _, file := range uploaded {
			if err := h.objects.RemoveProjectFile(c.Request.Context(), file.ObjectKey); err != nil {
				h.log.Warn().Err(err).Str("object_key", file.ObjectKey).Msg("discard stored file failed")
			}
		}
	}

	for _, header := range form.File["files"] {
		src, err := header.Open()
		if err != nil {
			discardStored()
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("open %s: %v", header.Filename, err)})
			return
		}

		name := path.Base(header.Filename)
		objectKey := fmt.Sprintf("projects/%d/%s/%s-%s", id, project.DesignPackage, ids.New(), name)
		err = h.objects.PutProjectFile(c.Request.Context(), objectKey, src, header.Size, header.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			h.log.Error().Err(err).Str("object_key", objectKey).Msg("store project file failed")
			discardStored()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store file failed"})
			return
		}

		uploaded = append(uploaded, models.ProjectFile{
			Name:      name,
			ObjectKey: objectKey,
			SizeBytes: header.Size,
		})
	}

	updated, err := h.store.AddProjectFiles(id, uploaded, user.DisplayName, user.Role)
	if err != nil {
		discardStored()
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": updated})
}

func fileIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file index"})
		return 0, false
	}
	return index, true
}

func (h HandlerSet) ApproveProjectFile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanApproveFile(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}
	index, ok := fileIndex(c)
	if !ok {
		return
	}

	project, err := h.store.ApproveProjectFile(id, index, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h HandlerSet) RemoveProjectFile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !policy.CanRemoveFile(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}
	index, ok := fileIndex(c)
	if !ok {
		return
	}

	removed, err := h.store.RemoveProjectFile(id, index, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}

	if removed.ObjectKey != "" {
		if err := h.objects.RemoveProjectFile(c.Request.Context(), removed.ObjectKey); err != nil {
			h.log.Warn().Err(err).Str("object_key", removed.ObjectKey).Msg("remove stored file failed")
		}
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DownloadProjectFile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}
	index, ok := fileIndex(c)
	if !ok {
		return
	}

	file, err := h.store.ProjectFileAt(id, index)
	if err != nil {
		writeStateError(c, err)
		return
	}
	if !policy.CanViewFile(user.Role, file) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	url, err := h.objects.PresignedDownloadURL(c.Request.Context(), file.ObjectKey, file.Name, 15*time.Minute)
	if err != nil {
		h.log.Error().Err(err).Str("object_key", file.ObjectKey).Msg("presign download failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "presign failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
