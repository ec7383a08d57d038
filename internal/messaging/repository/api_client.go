package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"elevator_pitch_messaging/internal/messaging/domain"
	errprocess "elevator_pitch_messaging/pkg/err"
)

// MessageAPI boundary contract of the external message backend
type MessageAPI interface {
	GetMessageRooms(ctx context.Context, userID, role string) ([]domain.MessageRoom, error)
	GetMessages(ctx context.Context, roomID string, page, limit int) ([]domain.Message, domain.PageMeta, error)
	SendMessage(ctx context.Context, roomID, senderID, body, clientTempID string, files []domain.FileUpload) (domain.Message, error)
	EditMessage(ctx context.Context, messageID, body string) (domain.Message, error)
	DeleteMessages(ctx context.Context, roomID string) error
}

// APIClient HTTP implementation of MessageAPI
type APIClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewAPIClient create APIClient
func NewAPIClient(baseURL, token string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope standard response wrapper of the message API
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    domain.PageMeta `json:"meta,omitempty"`
}

func (c *APIClient) doRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("message api %s %s: bad response: %v", method, path, err))
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, errprocess.Set(fmt.Sprintf("message api %s %s: %d %s", method, path, resp.StatusCode, env.Message))
	}
	return &env, nil
}

// GetMessageRooms fetches the full room list for one (userID, role) pair
func (c *APIClient) GetMessageRooms(ctx context.Context, userID, role string) ([]domain.MessageRoom, error) {
	path := "/message-room/get-message-rooms?type=" + url.QueryEscape(role) + "&userId=" + url.QueryEscape(userID)
	env, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var rooms []domain.MessageRoom
	if err := json.Unmarshal(env.Data, &rooms); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("message api room list decode: %v", err))
	}
	return rooms, nil
}

// GetMessages fetches one page of a room's history
func (c *APIClient) GetMessages(ctx context.Context, roomID string, page, limit int) ([]domain.Message, domain.PageMeta, error) {
	path := "/message/" + url.PathEscape(roomID) +
		"?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	env, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}

	var messages []domain.Message
	if err := json.Unmarshal(env.Data, &messages); err != nil {
		return nil, domain.PageMeta{}, errprocess.Set(fmt.Sprintf("message api page decode: %v", err))
	}
	return messages, env.Meta, nil
}

// SendMessage submits a new message as multipart form data
func (c *APIClient) SendMessage(ctx context.Context, roomID, senderID, body, clientTempID string, files []domain.FileUpload) (domain.Message, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"roomId":   roomID,
		"senderId": senderID,
	}
	if body != "" {
		fields["message"] = body
	}
	if clientTempID != "" {
		fields["clientTempId"] = clientTempID
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return domain.Message{}, err
		}
	}

	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.Name))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return domain.Message{}, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return domain.Message{}, err
		}
	}
	if err := w.Close(); err != nil {
		return domain.Message{}, err
	}

	env, err := c.doRequest(ctx, http.MethodPost, "/message", w.FormDataContentType(), &buf)
	if err != nil {
		return domain.Message{}, err
	}

	var created domain.Message
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return domain.Message{}, errprocess.Set(fmt.Sprintf("message api send decode: %v", err))
	}
	return created, nil
}

// EditMessage updates the body of an existing message
func (c *APIClient) EditMessage(ctx context.Context, messageID, body string) (domain.Message, error) {
	payload, err := json.Marshal(map[string]string{"message": body})
	if err != nil {
		return domain.Message{}, err
	}

	env, err := c.doRequest(ctx, http.MethodPatch, "/message/"+url.PathEscape(messageID), "application/json", bytes.NewReader(payload))
	if err != nil {
		return domain.Message{}, err
	}

	var updated domain.Message
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		return domain.Message{}, errprocess.Set(fmt.Sprintf("message api edit decode: %v", err))
	}
	return updated, nil
}

// DeleteMessages removes a room's messages
func (c *APIClient) DeleteMessages(ctx context.Context, roomID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/message/"+url.PathEscape(roomID), "", nil)
	return err
}
