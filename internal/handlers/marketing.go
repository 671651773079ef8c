package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/models"
)

type servicePackage struct {
	models.DesignPackage
	Timeline string `json:"timeline"`
}

// designPackages is the service catalog; package IDs key project file
// collections.
var designPackages = []servicePackage{
	{
		DesignPackage: models.DesignPackage{
			ID:      "good-plus",
			Name:    "Good Plus",
			Tagline: "Perfect for starter homes",
			Price:   "Rs29 - Rs.69/sq.ft",
			Features: []string{
				"Basic architectural design",
				"2D floor plans",
				"Standard material selection",
				"Email support",
				"1 revision round",
			},
		},
		Timeline: "1-2 weeks",
	},
	{
		DesignPackage: models.DesignPackage{
			ID:      "better-plus",
			Name:    "Better Plus",
			Tagline: "Enhanced design experience",
			Price:   "Rs.99 - Rs.129/sq.ft",
			Features: []string{
				"Enhanced architectural design",
				"3D Interior & Exterior renderings",
				"Premium material selection",
				"Priority support",
				"2 revision rounds",
				"Basic structural consultation",
			},
		},
		Timeline: "2-4 weeks",
	},
	{
		DesignPackage: models.DesignPackage{
			ID:      "quad-plus",
			Name:    "Quad Plus",
			Tagline: "Our most popular package",
			Price:   "Rs.129 - Rs.149/Sq.ft",
			Features: []string{
				"Premium architectural design",
				"Full 3D/VR experience",
				"3D Interior & Exterior renderings",
				"Luxury material selection",
				"Dedicated architect",
				"Unlimited revisions",
				"Full structural consultation",
				"MEP integration",
				"Project Management",
			},
		},
		Timeline: "3-6 weeks",
	},
	{
		DesignPackage: models.DesignPackage{
			ID:      "luxury-plus",
			Name:    "Luxury Plus",
			Tagline: "The ultimate design experience",
			Price:   "Rs.129+",
			Features: []string{
				"Custom luxury design",
				"Full 3D/4D/VR experience",
				"Bespoke material sourcing",
				"Team of architects",
				"Unlimited revisions",
				"Full structural & MEP integration",
				"Project management",
				"Construction supervision",
				"Smart home integration",
			},
		},
		Timeline: "6-8 weeks",
	},
}

// ValidPackageID reports whether id names a catalog package.
func ValidPackageID(id string) bool {
	for _, pkg := range designPackages {
		if pkg.ID == id {
			return true
		}
	}
	return false
}

func (h HandlerSet) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": designPackages})
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
	Package string `json:"package"`
}

// SubmitContact acknowledges a contact-form submission. There is no
// downstream delivery; the submission is logged for follow-up.
func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info().
		Str("name", req.Name).
		Str("email", req.Email).
		Str("subject", req.Subject).
		Str("package", req.Package).
		Msg("contact form submitted")

	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you for your message! We'll get back to you soon.",
	})
}
