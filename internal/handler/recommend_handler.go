package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dishahq/disha/internal/model"
	"github.com/dishahq/disha/internal/pkg/errcode"
	"github.com/dishahq/disha/internal/pkg/response"
	"github.com/dishahq/disha/internal/service"
)

type RecommendHandler struct {
	recommender *service.RecommendService
}

func NewRecommendHandler(recommender *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

type recommendRequest struct {
	Skills            []string `json:"skills"`
	Qualification     string   `json:"qualification"`
	PreferredLocation string   `json:"preferred_location"`
	Pincode           string   `json:"pincode"`
	MinStipend        int64    `json:"min_stipend"`
	AvailableFrom     string   `json:"available_from"`
	RemoteOK          bool     `json:"remote_ok"`
	Lat               *float64 `json:"lat"`
	Lon               *float64 `json:"lon"`

	K             int      `json:"k"`
	MaxDistanceKm *float64 `json:"max_distance_km"`
}

type recommendResponse struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	Count           int                    `json:"count"`
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.MinStipend < 0 {
		response.Error(c, errcode.ErrInvalid, "min_stipend must not be negative")
		return
	}
	if req.MaxDistanceKm != nil && *req.MaxDistanceKm <= 0 {
		response.Error(c, errcode.ErrInvalid, "max_distance_km must be positive")
		return
	}
	profile := &model.UserProfile{
		Skills:            req.Skills,
		Qualification:     req.Qualification,
		PreferredLocation: req.PreferredLocation,
		Pincode:           req.Pincode,
		MinStipend:        req.MinStipend,
		AvailableFrom:     req.AvailableFrom,
		RemoteOK:          req.RemoteOK,
		Lat:               req.Lat,
		Lon:               req.Lon,
	}
	recs := h.recommender.Recommend(c.Request.Context(), profile, req.K, req.MaxDistanceKm)
	response.Success(c, recommendResponse{Recommendations: recs, Count: len(recs)})
}
