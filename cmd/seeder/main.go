package main

import (
	"log"
	"time"

	"github.com/amar-295/changelog-hub/internal/config"
	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	"github.com/amar-295/changelog-hub/pkg/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Release{},
	)

	log.Println("👤 Creating demo workspace and owner...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	owner := models.User{
		ID:       uuid.New().String(),
		Name:     "Demo Owner",
		Email:    "demo@changeloghub.io",
		Password: string(hash),
	}
	workspace := models.Workspace{
		ID:          uuid.New().String(),
		Name:        "Acme Inc",
		Description: "Product updates from the Acme team",
		Subdomain:   "acme",
		OwnerID:     owner.ID,
		Members:     pq.StringArray{owner.ID},
	}
	owner.WorkspaceID = workspace.ID

	if err := database.DB.FirstOrCreate(&workspace, models.Workspace{Subdomain: "acme"}).Error; err != nil {
		log.Fatalf("❌ Failed to seed workspace: %v", err)
	}
	if err := database.DB.FirstOrCreate(&owner, models.User{Email: owner.Email}).Error; err != nil {
		log.Fatalf("❌ Failed to seed owner: %v", err)
	}

	log.Println("📝 Seeding releases...")
	now := time.Now()
	samples := []struct {
		title    string
		content  string
		version  string
		category models.ReleaseCategory
		publish  bool
	}{
		{"Dark Mode Released", "<p>The whole dashboard now supports dark mode.</p>", "v2.1.0", models.CategoryFeature, true},
		{"Faster Search", "<p>Search queries are now 3x faster.</p>", "v2.0.4", models.CategoryImprovement, true},
		{"Fixed Login Redirect Loop", "<p>Logging in no longer bounces you back to the sign-in page.</p>", "v2.0.3", models.CategoryBugfix, true},
		{"Upcoming API v3", "<p>Preview of the new public API.</p>", "", models.CategoryOther, false},
	}

	for i, s := range samples {
		release := models.Release{
			ID:          uuid.New().String(),
			Title:       s.title,
			Slug:        utils.GenerateSlug(s.title),
			Content:     s.content,
			Version:     s.version,
			Category:    s.category,
			Status:      models.StatusDraft,
			WorkspaceID: workspace.ID,
			CreatedBy:   owner.ID,
		}
		if s.publish {
			release.Status = models.StatusPublished
			publishedAt := now.Add(-time.Duration(i) * 24 * time.Hour)
			release.PublishedAt = &publishedAt
		}
		if err := database.DB.FirstOrCreate(&release, models.Release{
			WorkspaceID: workspace.ID,
			Slug:        release.Slug,
		}).Error; err != nil {
			log.Fatalf("❌ Failed to seed release %q: %v", s.title, err)
		}
	}

	log.Println("✅ Seed complete. Login: demo@changeloghub.io / password123, workspace https://acme.<APP_DOMAIN>")
}
