package media

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// URLPrefix is where the server mounts the media directory.
const URLPrefix = "/media/"

const (
	maxImageBytes   = 10 << 20
	downloadTimeout = 30 * time.Second
)

var allowedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Item is one image in the gallery picker.
type Item struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// fileName builds a unique, URL-safe file name from an uploaded name.
func fileName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		slug = "image"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return uuid.NewString()[:8] + "-" + slug + ext
}

// validName rejects anything that is not a plain file name inside the media directory.
func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}

func toItem(info os.FileInfo) Item {
	return Item{Name: info.Name(), URL: URLPrefix + info.Name(), Size: info.Size(), ModifiedAt: info.ModTime()}
}

// GET /api/admin/media
func ListHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := os.ReadDir(cfg.MediaPath)
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON([]Item{})
		}
		if err != nil {
			return err
		}

		items := make([]Item, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() || !allowedExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			items = append(items, toItem(info))
		}

		sort.Slice(items, func(i, j int) bool { return items[i].ModifiedAt.After(items[j].ModifiedAt) })
		return c.JSON(items)
	}
}

// POST /api/admin/media (multipart "file")
func UploadHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return web.NewValidationError("file", "no image selected")
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExts[ext] {
			return web.NewValidationError("file", "jpg, jpeg, png, webp or gif only")
		}
		if fileHeader.Size > maxImageBytes {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image is larger than 10 MB")
		}

		if err := os.MkdirAll(cfg.MediaPath, 0o755); err != nil {
			return fmt.Errorf("creating media directory: %w", err)
		}

		name := fileName(fileHeader.Filename, ext)
		path := filepath.Join(cfg.MediaPath, name)
		if err := c.SaveFile(fileHeader, path); err != nil {
			return fmt.Errorf("saving image: %w", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		slog.Info("image uploaded", "name", name, "size", info.Size(), "user", auth.CurrentActor(c).Name)
		return c.Status(fiber.StatusCreated).JSON(toItem(info))
	}
}

type ImportRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// POST /api/admin/media/import {"url": "https://..."}
// The file type is taken from the downloaded bytes, not from the URL.
func ImportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ImportRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		data, err := download(body.URL)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}

		ext, ok := extByType[http.DetectContentType(data)]
		if !ok {
			return web.NewValidationError("url", "not an image")
		}

		if err := os.MkdirAll(cfg.MediaPath, 0o755); err != nil {
			return fmt.Errorf("creating media directory: %w", err)
		}

		name := fileName(filepath.Base(strings.SplitN(body.URL, "?", 2)[0]), ext)
		path := filepath.Join(cfg.MediaPath, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("saving image: %w", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		slog.Info("image imported", "name", name, "source", body.URL, "user", auth.CurrentActor(c).Name)
		return c.Status(fiber.StatusCreated).JSON(toItem(info))
	}
}

func download(url string) ([]byte, error) {
	agent := fiber.Get(url).Timeout(downloadTimeout).MaxRedirectsCount(3)
	agent.Set(fiber.HeaderUserAgent, "MelbourneBistroCMS/1.0")

	code, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("image could not be downloaded: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("image download failed with status %d", code)
	}
	if len(data) > maxImageBytes {
		return nil, errors.New("image is larger than 10 MB")
	}
	return data, nil
}

// DELETE /api/admin/media/:name
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		if !validName(name) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid file name")
		}

		err := os.Remove(filepath.Join(cfg.MediaPath, name))
		if errors.Is(err, os.ErrNotExist) {
			return fiber.NewError(fiber.StatusNotFound, "Image not found")
		}
		if err != nil {
			return err
		}

		slog.Info("image deleted", "name", name, "user", auth.CurrentActor(c).Name)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
