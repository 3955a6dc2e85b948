// Copyright (c) 2026 PalText. All rights reserved.

package upload

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paltextai/backend/internal/platform/metrics"
)

// ImageHost is the outbound image-hosting boundary.
type ImageHost interface {

	// Upload stores the image bytes and returns the hosted URL plus the
	// provider's public ID.
	Upload(ctx context.Context, filename string, data []byte) (url, publicID string, err error)

	// Destroy removes a previously uploaded image by public ID.
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryConfig carries the credentials for the hosted image CDN.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// uploadFolder groups all blog assets under one Cloudinary folder.
const uploadFolder = "paltext-blog"

// cloudinaryClient implements [ImageHost] using Cloudinary's signed upload API.
type cloudinaryClient struct {
	config     CloudinaryConfig
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewCloudinaryClient constructs an [ImageHost] backed by Cloudinary.
func NewCloudinaryClient(config CloudinaryConfig) ImageHost {
	return &cloudinaryClient{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.cloudinary.com/v1_1",
		now:        time.Now,
	}
}

func (client *cloudinaryClient) Upload(ctx context.Context, filename string, data []byte) (string, string, error) {
	timestamp := strconv.FormatInt(client.now().Unix(), 10)
	params := map[string]string{
		"folder":    uploadFolder,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	for key, value := range params {
		if err := form.WriteField(key, value); err != nil {
			return "", "", fmt.Errorf("upload: build form: %w", err)
		}
	}
	if err := form.WriteField("api_key", client.config.APIKey); err != nil {
		return "", "", fmt.Errorf("upload: build form: %w", err)
	}
	if err := form.WriteField("signature", client.sign(params)); err != nil {
		return "", "", fmt.Errorf("upload: build form: %w", err)
	}

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", "", fmt.Errorf("upload: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", "", fmt.Errorf("upload: build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", "", fmt.Errorf("upload: build form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", client.baseURL, client.config.CloudName)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", "", fmt.Errorf("upload: build request: %w", err)
	}
	request.Header.Set("Content-Type", form.FormDataContentType())

	responseBody, err := client.do(request, "upload")
	if err != nil {
		return "", "", err
	}

	var response struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return "", "", fmt.Errorf("upload: decode cloudinary response: %w", err)
	}

	return response.SecureURL, response.PublicID, nil
}

// ErrAssetNotFound is returned by Destroy when the provider has no asset for
// the given public ID.
var ErrAssetNotFound = fmt.Errorf("upload: asset not found")

func (client *cloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(client.now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := make([]string, 0, 4)
	form = append(form,
		"public_id="+publicID,
		"timestamp="+timestamp,
		"api_key="+client.config.APIKey,
		"signature="+client.sign(params),
	)

	endpoint := fmt.Sprintf("%s/%s/image/destroy", client.baseURL, client.config.CloudName)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(strings.Join(form, "&")))
	if err != nil {
		return fmt.Errorf("upload: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	responseBody, err := client.do(request, "destroy")
	if err != nil {
		return err
	}

	var response struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return fmt.Errorf("upload: decode cloudinary response: %w", err)
	}

	if response.Result == "not found" {
		return ErrAssetNotFound
	}
	if response.Result != "ok" {
		return fmt.Errorf("upload: cloudinary destroy result %q", response.Result)
	}

	return nil
}

// sign produces the SHA-1 request signature Cloudinary expects: parameters
// sorted by key, joined as key=value with '&', followed by the API secret.
func (client *cloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + client.config.APISecret))
	return hex.EncodeToString(digest[:])
}

// do executes the request and records the call metric.
func (client *cloudinaryClient) do(request *http.Request, operation string) ([]byte, error) {
	response, err := client.httpClient.Do(request)
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("cloudinary", operation, "error").Inc()
		return nil, fmt.Errorf("upload: cloudinary request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("cloudinary", operation, "error").Inc()
		return nil, fmt.Errorf("upload: read cloudinary response: %w", err)
	}

	if response.StatusCode >= 400 {
		metrics.ExternalCallsTotal.WithLabelValues("cloudinary", operation, "error").Inc()
		return nil, fmt.Errorf("upload: cloudinary returned status %d: %s", response.StatusCode, body)
	}

	metrics.ExternalCallsTotal.WithLabelValues("cloudinary", operation, "success").Inc()
	return body, nil
}
