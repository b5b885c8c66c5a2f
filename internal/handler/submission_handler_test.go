package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/heartpages/lovepage-backend/internal/repository"
	"github.com/heartpages/lovepage-backend/internal/service"
	"github.com/heartpages/lovepage-backend/pkg/database"
	"github.com/heartpages/lovepage-backend/pkg/qrcode"
	"github.com/heartpages/lovepage-backend/pkg/storage"
	"github.com/heartpages/lovepage-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type acceptAllVerifier struct{}

func (acceptAllVerifier) Verify(_ context.Context, _ string, _ float64) error { return nil }

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	blobs, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	tierRepo := repository.NewPackageTierRepository(db)
	submissionService := service.NewSubmissionService(
		repository.NewSubmissionRepository(db),
		tierRepo,
		acceptAllVerifier{},
		nil,
		blobs,
		t.TempDir(),
		zap.NewNop(),
	)

	submissionHandler := NewSubmissionHandler(
		submissionService,
		qrcode.NewQRService("http://localhost:3000"),
		utils.NewValidator(),
		"http://localhost:3000",
		zap.NewNop(),
	)
	packageHandler := NewPackageHandler(service.NewPackageService(tierRepo), zap.NewNop())

	app := fiber.New()
	RegisterRoutes(app, submissionHandler, packageHandler)
	return app
}

type formFile struct {
	field    string
	name     string
	contents string
}

func multipartRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte(file.contents)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/create-love-page", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("failed to decode response %q: %v", raw, err)
	}
}

func validForm() map[string]string {
	return map[string]string{
		"senderName":       "Ada",
		"partnerName":      "Bob",
		"relationship":     "Engaged",
		"loveMessage":      "Forever yours",
		"packageId":        "ultimate",
		"packageName":      "Ultimate Love Story",
		"packagePrice":     "80",
		"whatsapp":         "+2348012345678",
		"paymentReference": "ref-123",
	}
}

func TestHealth(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestCreateThenFetchRoundtrip(t *testing.T) {
	app := testApp(t)

	req := multipartRequest(t, validForm(), []formFile{
		{field: "images", name: "first.jpg", contents: "img-1"},
		{field: "images", name: "second.jpg", contents: "img-2"},
		{field: "videos", name: "clip.mp4", contents: "vid-1"},
		{field: "music", name: "song.mp3", contents: "tune"},
	})
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var created struct {
		Message string `json:"message"`
		Slug    string `json:"slug"`
		Link    string `json:"link"`
	}
	decodeBody(t, resp, &created)
	if created.Slug == "" || created.Link == "" {
		t.Fatalf("missing slug or link in %+v", created)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/love/"+created.Slug, nil))
	if err != nil {
		t.Fatalf("fetch request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got struct {
		SenderName  string   `json:"senderName"`
		PartnerName string   `json:"partnerName"`
		PackageID   string   `json:"packageId"`
		Images      []string `json:"images"`
		Videos      []string `json:"videos"`
		Music       string   `json:"music"`
		Sections    struct {
			Photos bool `json:"photos"`
			Videos bool `json:"videos"`
			Music  bool `json:"music"`
		} `json:"sections"`
	}
	decodeBody(t, resp, &got)
	if got.SenderName != "Ada" || got.PartnerName != "Bob" || got.PackageID != "ultimate" {
		t.Fatalf("fetched fields do not match submission: %+v", got)
	}
	if len(got.Images) != 2 || len(got.Videos) != 1 || got.Music == "" {
		t.Fatalf("unexpected media: %+v", got)
	}
	if !got.Sections.Photos || !got.Sections.Videos || !got.Sections.Music {
		t.Fatalf("unexpected sections for ultimate tier: %+v", got.Sections)
	}
}

func TestCreateDistinctSlugs(t *testing.T) {
	app := testApp(t)

	var slugs []string
	for i := 0; i < 2; i++ {
		resp, err := app.Test(multipartRequest(t, validForm(), nil), 5000)
		if err != nil {
			t.Fatalf("create request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var created struct {
			Slug string `json:"slug"`
		}
		decodeBody(t, resp, &created)
		slugs = append(slugs, created.Slug)
	}

	if slugs[0] == slugs[1] {
		t.Fatalf("identical form data must yield distinct slugs, both %q", slugs[0])
	}
}

func TestCreateMissingRequiredFields(t *testing.T) {
	app := testApp(t)

	form := validForm()
	delete(form, "senderName")
	resp, err := app.Test(multipartRequest(t, form, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateRejectsUnknownPackage(t *testing.T) {
	app := testApp(t)

	form := validForm()
	form["packageId"] = "deluxe"
	resp, err := app.Test(multipartRequest(t, form, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateRejectsTooManyMusicFiles(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(multipartRequest(t, validForm(), []formFile{
		{field: "music", name: "one.mp3", contents: "a"},
		{field: "music", name: "two.mp3", contents: "b"},
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestFetchUnknownSlug(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/love/does-not-exist", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if _, leaked := body["senderName"]; leaked {
		t.Fatal("404 response must not leak row data")
	}
	if body["message"] != "Love page not found." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestGetPackages(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/packages", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tiers []struct {
		ID             string  `json:"id"`
		Price          float64 `json:"price"`
		IncludesPhotos bool    `json:"includesPhotos"`
	}
	decodeBody(t, resp, &tiers)
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(tiers))
	}
	if tiers[0].ID != "basic" || tiers[0].Price != 30 || tiers[0].IncludesPhotos {
		t.Fatalf("unexpected first tier: %+v", tiers[0])
	}
}

func TestGetPackageByCode(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/packages/ultimate", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tier struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		Price          float64 `json:"price"`
		IncludesVideos bool    `json:"includesVideos"`
	}
	decodeBody(t, resp, &tier)
	if tier.ID != "ultimate" || tier.Price != 80 || !tier.IncludesVideos {
		t.Fatalf("unexpected tier: %+v", tier)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/packages/deluxe", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown package, got %d", resp.StatusCode)
	}
}

func TestLovePageQR(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(multipartRequest(t, validForm(), nil), 5000)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	var created struct {
		Slug string `json:"slug"`
	}
	decodeBody(t, resp, &created)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/love/"+created.Slug+"/qr", nil))
	if err != nil {
		t.Fatalf("qr request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil || len(png) == 0 {
		t.Fatalf("expected PNG bytes, err=%v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/love/missing/qr", nil))
	if err != nil {
		t.Fatalf("qr request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", resp.StatusCode)
	}
}
