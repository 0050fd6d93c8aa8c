package http

import (
	"net/http"
	"strconv"
	"strings"

	"yt-dashboard/domain/commenttree"
	"yt-dashboard/domain/dto"
	"yt-dashboard/infrastructure/utils"
	"yt-dashboard/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
)

const searchPath = "/api/search"

// IYouTubeHandler defines the interface for YouTube HTTP handlers
type IYouTubeHandler interface {
	SearchVideos(ctx *gin.Context)
	GetSuggestions(ctx *gin.Context)
	GetVideoDetails(ctx *gin.Context)
	GetVideoComments(ctx *gin.Context)
}

// YouTubeHandler implements the YouTube HTTP handlers
type YouTubeHandler struct {
	searchUseCase usecase.ISearchUseCase
	videoUseCase  usecase.IVideoUseCase
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(searchUseCase usecase.ISearchUseCase, videoUseCase usecase.IVideoUseCase) IYouTubeHandler {
	return &YouTubeHandler{
		searchUseCase: searchUseCase,
		videoUseCase:  videoUseCase,
	}
}

// SearchVideos handles GET /api/search
func (h *YouTubeHandler) SearchVideos(ctx *gin.Context) {
	keyword := strings.TrimSpace(ctx.Query("q"))
	if keyword == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Search query is required",
			"message": "provide a non-empty q parameter",
		})
		return
	}
	// Support both snake_case and camelCase query params from frontend
	pageToken := ctx.Query("page_token")
	if pageToken == "" {
		pageToken = ctx.Query("pageToken")
	}

	result, err := h.searchUseCase.Search(ctx.Request.Context(), keyword, pageToken)
	if err != nil {
		respondError(ctx, err, "Failed to search videos", nil)
		return
	}

	links, err := searchLinks(keyword, pageToken, result.NextPageToken, result.PrevPageToken)
	if err != nil {
		respondError(ctx, err, "Failed to build page links", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.SearchPageResponse{
			Keyword:          result.Keyword,
			Videos:           usecase.BuildVideoCards(result.Videos, utils.GetCurrentTime()),
			NextPageToken:    result.NextPageToken,
			PrevPageToken:    result.PrevPageToken,
			StatsUnavailable: result.StatsUnavailable,
			Summary:          result.Summary,
			Links:            links,
		},
	})
}

func searchLinks(keyword, self, next, prev string) (dto.PageLinks, error) {
	var links dto.PageLinks
	var err error
	if links.Self, err = searchURL(keyword, self); err != nil {
		return links, err
	}
	if next != "" {
		if links.Next, err = searchURL(keyword, next); err != nil {
			return links, err
		}
	}
	if prev != "" {
		if links.Prev, err = searchURL(keyword, prev); err != nil {
			return links, err
		}
	}
	return links, nil
}

func searchURL(keyword, token string) (string, error) {
	v, err := query.Values(dto.YouTubeSearchRequest{Q: keyword, PageToken: token})
	if err != nil {
		return "", err
	}
	return searchPath + "?" + v.Encode(), nil
}

// GetSuggestions handles GET /api/search/suggestions
func (h *YouTubeHandler) GetSuggestions(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	suggestions, err := h.searchUseCase.Suggestions(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err, "Failed to get suggestions", nil)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": suggestions})
}

// GetVideoDetails handles GET /api/videos/:videoId
func (h *YouTubeHandler) GetVideoDetails(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	if videoID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Video ID is required",
		})
		return
	}

	details, err := h.videoUseCase.GetVideoDetails(ctx.Request.Context(), videoID)
	if err != nil {
		respondError(ctx, err, "Failed to get video details", gin.H{"video_id": videoID})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    details,
	})
}

// GetVideoComments handles GET /api/videos/:videoId/comments.
// Disclosure state comes from comma separated id lists: visible, hidden, expanded.
func (h *YouTubeHandler) GetVideoComments(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	disclosure := commenttree.FromLists(
		idList(ctx, "visible"),
		idList(ctx, "hidden"),
		idList(ctx, "expanded"),
	)

	view, err := h.videoUseCase.RenderComments(ctx.Request.Context(), videoID, disclosure)
	if err != nil {
		respondError(ctx, err, "Failed to get comments", gin.H{"video_id": videoID})
		return
	}

	resp := gin.H{"success": true, "data": view}
	if !view.Available {
		resp["message"] = "Comments are unavailable for this video"
	}
	ctx.JSON(http.StatusOK, resp)
}

// idList accepts both repeated params (?visible=a&visible=b) and comma lists (?visible=a,b)
func idList(ctx *gin.Context, key string) []string {
	var ids []string
	for _, raw := range ctx.QueryArray(key) {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
