package youtube

import (
	"Credify/internal/api/config"
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrVideoNotFound 请求成功但平台查不到该视频
var ErrVideoNotFound = errors.New("video not found on youtube")

// Video YouTube Data API 返回的单个视频的元数据与当前统计量
type Video struct {
	ID           string
	Title        string
	Description  string
	Channel      string
	ThumbnailURL string
	PostedAt     time.Time
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// Fetcher 指标源抓取接口，便于任务与服务在测试中替换实现
type Fetcher interface {
	FetchVideo(ctx context.Context, videoID string) (*Video, error)
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
}

func NewClient(cfg config.YouTubeConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL("https://www.googleapis.com/youtube/v3").
		SetTimeout(timeout)

	return &Client{
		httpClient: client,
		apiKey:     cfg.APIKey,
	}
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *Client) FetchVideo(ctx context.Context, videoID string) (*Video, error) {
	var result videoListResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet,statistics",
			"id":   videoID,
			"key":  c.apiKey,
		}).
		SetResult(&result).
		Get("/videos")
	if err != nil {
		return nil, errors.Wrap(err, "request youtube data api")
	}
	if resp.IsError() {
		return nil, errors.Errorf("youtube data api returned %s", resp.Status())
	}
	if len(result.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := result.Items[0]

	video := &Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Channel:      item.Snippet.ChannelTitle,
		ViewCount:    parseCount(item.Statistics.ViewCount),
		LikeCount:    parseCount(item.Statistics.LikeCount),
		CommentCount: parseCount(item.Statistics.CommentCount),
	}

	if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		video.PostedAt = t
	}

	// 优先取高清缩略图，逐级回退
	for _, quality := range []string{"high", "medium", "default"} {
		if thumb, ok := item.Snippet.Thumbnails[quality]; ok && thumb.URL != "" {
			video.ThumbnailURL = thumb.URL
			break
		}
	}

	return video, nil
}

// parseCount 统计量在 API 里是字符串，缺失按 0 处理
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
