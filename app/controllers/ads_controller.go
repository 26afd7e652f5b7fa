package controllers

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/ads"
	"github.com/proveo-app/proveo/internal/pkg/metrics/counter"
	"github.com/proveo-app/proveo/internal/pkg/storage"
)

var adValidate = validator.New()

var (
	adRngOnce sync.Once
	adRng     *rand.Rand
	adRngMu   sync.Mutex
)

func pickBanner(banners []models.AdBanner) *models.AdBanner {
	adRngOnce.Do(func() {
		adRng = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	adRngMu.Lock()
	defer adRngMu.Unlock()
	return ads.PickWeighted(banners, adRng)
}

// PublicAd is the banner shape served to the public site.
type PublicAd struct {
	ID           uint   `json:"id"`
	Placement    string `json:"placement"`
	CreativeType string `json:"creative_type"`
	Animation    string `json:"animation"`

	SponsorName string `json:"sponsor_name"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	CTAText     string `json:"cta_text"`

	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	FontFamily      string `json:"font_family"`
	FontSize        int    `json:"font_size"`

	LogoURL      string `json:"logo_url"`
	ImageFileURL string `json:"image_file_url"`
	ImageURL     string `json:"image_url"`
	LinkURL      string `json:"link_url"`
}

func toPublicAd(b *models.AdBanner, cfg *storage.Config) PublicAd {
	ad := PublicAd{
		ID:              b.ID,
		Placement:       b.Placement,
		CreativeType:    b.CreativeType,
		Animation:       b.Animation,
		SponsorName:     b.SponsorName,
		Title:           b.Title,
		Subtitle:        b.Subtitle,
		CTAText:         b.CTAText,
		BackgroundColor: b.BackgroundColor,
		TextColor:       b.TextColor,
		FontFamily:      b.FontFamily,
		FontSize:        b.FontSize,
		ImageURL:        b.ImageURL,
		LinkURL:         b.LinkURL,
	}
	if b.LogoKey != "" {
		ad.LogoURL = cfg.PublicURL(b.LogoKey)
	}
	if b.ImageKey != "" {
		ad.ImageFileURL = cfg.PublicURL(b.ImageKey)
	}
	return ad
}

// HandleAdSlot serves one weighted-random running banner for a placement and
// buffers an impression. An empty slot returns {"ad": null}.
func HandleAdSlot(c *fiber.Ctx) error {
	placement := ads.NormalizePlacement(c.Query("placement"))
	if placement == "" {
		return badRequest(c, "placement must be HEADER|FOOTER|LEFT_RAIL|RIGHT_RAIL")
	}

	banners, err := repository.GetGlobalFactory().GetAdRepository().
		GetRunningByPlacement(placement, time.Now())
	if err != nil {
		return serverError(c, err)
	}

	banner := pickBanner(banners)
	if banner == nil {
		return c.JSON(fiber.Map{"ad": nil})
	}

	if err := counter.AddAdImpression(banner.ID); err != nil {
		log.Warnf("[Ads] impression buffer failed for banner %d: %v", banner.ID, err)
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"ad": toPublicAd(banner, cfg)})
}

// HandleAdClick buffers a click and returns the banner's link URL for the
// client to follow.
func HandleAdClick(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "invalid banner id")
	}

	banner, err := repository.GetGlobalFactory().GetAdRepository().GetBannerByID(uint(id))
	if err != nil || !banner.IsRunning(time.Now()) || banner.LinkURL == "" {
		return notFound(c, "banner not found")
	}

	if err := counter.AddAdClick(banner.ID); err != nil {
		log.Warnf("[Ads] click buffer failed for banner %d: %v", banner.ID, err)
	}

	return c.JSON(fiber.Map{"link_url": banner.LinkURL})
}

var allowedCreativeExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// HandleCreateAdRequest accepts a public sponsor intake form, optionally with
// logo and image uploads.
func HandleCreateAdRequest(c *fiber.Ctx) error {
	placement := ads.NormalizePlacement(c.FormValue("placement"))
	if placement == "" {
		return badRequest(c, "placement must be HEADER|FOOTER|LEFT_RAIL|RIGHT_RAIL")
	}

	creativeType := strings.ToUpper(strings.TrimSpace(c.FormValue("creative_type", models.AdCreativeImage)))
	if creativeType != models.AdCreativeImage && creativeType != models.AdCreativeComposed {
		creativeType = models.AdCreativeImage
	}

	animation := strings.ToUpper(strings.TrimSpace(c.FormValue("animation", models.AdAnimationNone)))
	switch animation {
	case models.AdAnimationNone, models.AdAnimationPulse, models.AdAnimationFloat:
	default:
		animation = models.AdAnimationNone
	}

	durationMonths, _ := strconv.Atoi(c.FormValue("duration_months", "1"))
	if durationMonths < 1 {
		durationMonths = 1
	}
	if durationMonths > 24 {
		durationMonths = 24
	}

	fontSize, _ := strconv.Atoi(c.FormValue("font_size", "16"))
	if fontSize < 1 {
		fontSize = 16
	}

	req := &models.AdRequest{
		Placement:       placement,
		SponsorName:     strings.TrimSpace(c.FormValue("sponsor_name")),
		ContactName:     strings.TrimSpace(c.FormValue("contact_name")),
		ContactEmail:    strings.TrimSpace(c.FormValue("contact_email")),
		ContactPhone:    strings.TrimSpace(c.FormValue("contact_phone")),
		LinkURL:         strings.TrimSpace(c.FormValue("link_url")),
		CreativeType:    creativeType,
		Animation:       animation,
		Title:           strings.TrimSpace(c.FormValue("title")),
		Subtitle:        strings.TrimSpace(c.FormValue("subtitle")),
		CTAText:         strings.TrimSpace(c.FormValue("cta_text")),
		BackgroundColor: strings.TrimSpace(c.FormValue("background_color")),
		TextColor:       strings.TrimSpace(c.FormValue("text_color")),
		FontFamily:      strings.TrimSpace(c.FormValue("font_family")),
		FontSize:        fontSize,
		DurationMonths:  durationMonths,
		Status:          models.AdRequestStatusPending,
		Notes:           strings.TrimSpace(c.FormValue("notes")),
	}
	if err := adValidate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		return serverError(c, err)
	}
	if cfg.IsEnabled() {
		if key, err := uploadCreative(c, cfg, "logo"); err != nil {
			return badRequest(c, err.Error())
		} else if key != "" {
			req.LogoKey = key
		}
		if key, err := uploadCreative(c, cfg, "image"); err != nil {
			return badRequest(c, err.Error())
		} else if key != "" {
			req.ImageKey = key
		}
	}

	if err := repository.GetGlobalFactory().GetAdRepository().CreateRequest(req); err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "request_id": req.ID})
}

// uploadCreative stores one optional multipart file field in the media
// bucket, returning the object key or "" when the field is absent.
func uploadCreative(c *fiber.Ctx, cfg *storage.Config, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedCreativeExtensions[ext] {
		return "", fiber.NewError(fiber.StatusBadRequest, "unsupported "+field+" format")
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	objectKey := cfg.CreativeObjectKey(uuid.NewString(), ext, time.Now())
	result, err := client.Upload(c.Context(), objectKey, fileHeader.Header.Get(fiber.HeaderContentType), file, fileHeader.Size)
	if err != nil {
		return "", err
	}
	return result.ObjectKey, nil
}
