package state

import (
	"fmt"

	"quadplus/api/internal/models"
)

// Projects returns a deep snapshot of the project register.
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

func cloneProjects(in []models.Project) []models.Project {
	out := make([]models.Project, len(in))
	for i, p := range in {
		out[i] = cloneProject(p)
	}
	return out
}

func cloneProject(p models.Project) models.Project {
	clone := p
	clone.AssignedRoles = append([]string(nil), p.AssignedRoles...)
	if p.Files != nil {
		clone.Files = make(map[string][]models.ProjectFile, len(p.Files))
		for pkg, files := range p.Files {
			copied := append([]models.ProjectFile(nil), files...)
			for i := range copied {
				copied[i].Index = i
			}
			clone.Files[pkg] = copied
		}
	}
	return clone
}

// CreateProject adds a project with the source defaults: status Planning,
// progress 0, and a single assigned role derived from the actor (customers
// get "Customer", everyone else "Architect"). IDs follow the original
// count-plus-one policy.
func (s *Store) CreateProject(name, customer string, actorName string, actorRole models.Role) (models.Project, error) {
	if name == "" || customer == "" {
		return models.Project{}, ErrMissingFields
	}

	defaultRole := "Architect"
	if actorRole == models.RoleCustomer {
		defaultRole = "Customer"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := models.Project{
		ID:            len(s.projects) + 1,
		Name:          name,
		Customer:      customer,
		Status:        models.ProjectStatusPlanning,
		Progress:      0,
		AssignedRoles: []string{defaultRole},
		LastUpdatedBy: actorName,
		Files:         map[string][]models.ProjectFile{},
	}

	s.projects = append(cloneProjects(s.projects), project)
	s.record(fmt.Sprintf("Project %q added by %s", project.Name, actorName))
	return cloneProject(project), nil
}

// mutateProject rebuilds the register with fn applied to the matching
// project. fn returns the notification text; the caller's change is applied
// to a clone, never in place.
func (s *Store) mutateProject(id int, fn func(p *models.Project) (string, error)) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneProjects(s.projects)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		note, err := fn(&next[i])
		if err != nil {
			return models.Project{}, err
		}
		s.projects = next
		s.record(note)
		return cloneProject(next[i]), nil
	}
	return models.Project{}, ErrProjectNotFound
}

// AdjustProgress steps progress by delta and clamps the result to [0, 100].
// The clamp happens after the addition, whatever the step size.
func (s *Store) AdjustProgress(id int, delta int, actorName string) (models.Project, error) {
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		p.Progress = clamp(p.Progress+delta, 0, 100)
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("Project %q progress updated by %s", p.Name, actorName), nil
	})
}

func (s *Store) SetProjectStatus(id int, status models.ProjectStatus, actorName string) (models.Project, error) {
	if !status.Valid() {
		return models.Project{}, fmt.Errorf("%w: invalid status %q", ErrMissingFields, status)
	}
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		p.Status = status
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("Project %q status updated to %q by %s", p.Name, status, actorName), nil
	})
}

func (s *Store) SetProjectRoles(id int, roles []string, actorName string) (models.Project, error) {
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		p.AssignedRoles = append([]string(nil), roles...)
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("Project %q roles updated by %s", p.Name, actorName), nil
	})
}

func (s *Store) SetProjectPackage(id int, packageID string, actorName string) (models.Project, error) {
	if packageID == "" {
		return models.Project{}, ErrMissingFields
	}
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		p.DesignPackage = packageID
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("Project %q package set to %q by %s", p.Name, packageID, actorName), nil
	})
}

// AddProjectFiles files new uploads under the project's selected package.
// Uploads by customer sessions start unapproved; everyone else's are visible
// to the customer immediately.
func (s *Store) AddProjectFiles(id int, files []models.ProjectFile, actorName string, actorRole models.Role) (models.Project, error) {
	if len(files) == 0 {
		return models.Project{}, ErrMissingFields
	}
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		if p.DesignPackage == "" {
			return "", ErrNoPackage
		}
		if p.Files == nil {
			p.Files = map[string][]models.ProjectFile{}
		}
		for _, file := range files {
			file.UploadedBy = actorName
			file.ApprovedForCustomer = actorRole != models.RoleCustomer
			p.Files[p.DesignPackage] = append(p.Files[p.DesignPackage], file)
		}
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("Files uploaded for project %q, package %q", p.Name, p.DesignPackage), nil
	})
}

// ApproveProjectFile flips exactly one file's customer-visibility flag.
func (s *Store) ApproveProjectFile(id int, index int, actorName string) (models.Project, error) {
	return s.mutateProject(id, func(p *models.Project) (string, error) {
		files := p.Files[p.DesignPackage]
		if index < 0 || index >= len(files) {
			return "", ErrFileNotFound
		}
		files[index].ApprovedForCustomer = true
		return fmt.Sprintf("File approved for Customer by %s", actorName), nil
	})
}

// RemoveProjectFile removes one file by index within the selected package.
func (s *Store) RemoveProjectFile(id int, index int, actorName string) (models.ProjectFile, error) {
	var removed models.ProjectFile
	_, err := s.mutateProject(id, func(p *models.Project) (string, error) {
		files := p.Files[p.DesignPackage]
		if index < 0 || index >= len(files) {
			return "", ErrFileNotFound
		}
		removed = files[index]
		p.Files[p.DesignPackage] = append(files[:index:index], files[index+1:]...)
		p.LastUpdatedBy = actorName
		return fmt.Sprintf("File removed from project %q", p.Name), nil
	})
	return removed, err
}

// ProjectByID returns a deep snapshot of one project.
func (s *Store) ProjectByID(id int) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), nil
		}
	}
	return models.Project{}, ErrProjectNotFound
}

// ProjectFileAt resolves a file reference without mutating anything.
func (s *Store) ProjectFileAt(id int, index int) (models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID != id {
			continue
		}
		files := p.Files[p.DesignPackage]
		if index < 0 || index >= len(files) {
			return models.ProjectFile{}, ErrFileNotFound
		}
		file := files[index]
		file.Index = index
		return file, nil
	}
	return models.ProjectFile{}, ErrProjectNotFound
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
