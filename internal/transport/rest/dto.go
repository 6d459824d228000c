package rest

import (
	"time"

	"github.com/qiwenzhou/mytime-backend/internal/domain"
	"github.com/qiwenzhou/mytime-backend/internal/service/analytics"
)

const dateLayout = "2006-01-02"

type clusterResponse struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Keywords []string              `json:"keywords"`
	GoalIDs  []string              `json:"goalIds"`
	IsManual bool                  `json:"isManual"`
	Stats    *clusterStatsResponse `json:"stats,omitempty"`
}

type clusterStatsResponse struct {
	TotalMinutes    int     `json:"totalMinutes"`
	ActiveDays      int     `json:"activeDays"`
	AvgDailyMinutes int     `json:"avgDailyMinutes"`
	FirstActiveDate *string `json:"firstActiveDate"`
	LastActiveDate  *string `json:"lastActiveDate"`
	LongestStreak   int     `json:"longestStreak"`
	EntryCount      int     `json:"entryCount"`
	Health          string  `json:"health"`
}

type overviewResponse struct {
	TotalMinutes int             `json:"totalMinutes"`
	Distribution []shareResponse `json:"distribution"`
}

type shareResponse struct {
	ClusterID string  `json:"clusterId"`
	Name      string  `json:"name"`
	Minutes   int     `json:"minutes"`
	Share     float64 `json:"share"`
}

type suggestionResponse struct {
	EntryID         string   `json:"entryId"`
	Activity        string   `json:"activity"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	ClusterID       string   `json:"clusterId"`
	ClusterName     string   `json:"clusterName"`
	Confidence      float64  `json:"confidence"`
	Keywords        []string `json:"keywords"`
}

type trendKeyResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type trendBucketResponse struct {
	Date  string             `json:"date"`
	Hours map[string]float64 `json:"hours"`
}

type trendResponse struct {
	Granularity string                `json:"granularity"`
	Keys        []trendKeyResponse    `json:"keys"`
	Buckets     []trendBucketResponse `json:"buckets"`
}

type analyzeResponse struct {
	Clusters      []clusterResponse    `json:"clusters"`
	Suggestions   []suggestionResponse `json:"suggestions"`
	Overview      overviewResponse     `json:"overview"`
	CategoryTrend *trendResponse       `json:"categoryTrend,omitempty"`
	ClusterTrend  *trendResponse       `json:"clusterTrend,omitempty"`
}

func toAnalyzeResponse(result *analytics.AnalyzeResult) analyzeResponse {
	clusters := make([]clusterResponse, len(result.Clusters))
	for i, c := range result.Clusters {
		clusters[i] = toClusterResponse(c, &result.Stats[i])
	}

	resp := analyzeResponse{
		Clusters:    clusters,
		Suggestions: toSuggestionsResponse(result.Suggestions),
		Overview:    toOverviewResponse(result.Overview),
	}
	if result.CategoryTrend != nil {
		t := toTrendResponse(*result.CategoryTrend)
		resp.CategoryTrend = &t
	}
	if result.ClusterTrend != nil {
		t := toTrendResponse(*result.ClusterTrend)
		resp.ClusterTrend = &t
	}
	return resp
}

func toClusterResponse(c domain.GoalCluster, stats *domain.ClusterStats) clusterResponse {
	goalIDs := make([]string, len(c.GoalIDs))
	for i, id := range c.GoalIDs {
		goalIDs[i] = id.String()
	}

	resp := clusterResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Keywords: c.Keywords,
		GoalIDs:  goalIDs,
		IsManual: c.IsManual,
	}
	if stats != nil {
		resp.Stats = &clusterStatsResponse{
			TotalMinutes:    stats.TotalDuration,
			ActiveDays:      stats.ActiveDays,
			AvgDailyMinutes: stats.AvgDailyDuration,
			FirstActiveDate: formatDate(stats.FirstActiveDate),
			LastActiveDate:  formatDate(stats.LastActiveDate),
			LongestStreak:   stats.LongestStreak,
			EntryCount:      stats.EntryCount,
			Health:          stats.Health.String(),
		}
	}
	return resp
}

func toOverviewResponse(o domain.OverviewStats) overviewResponse {
	shares := make([]shareResponse, len(o.Distribution))
	for i, s := range o.Distribution {
		shares[i] = shareResponse{
			ClusterID: s.ClusterID.String(),
			Name:      s.Name,
			Minutes:   s.Minutes,
			Share:     s.Share,
		}
	}
	return overviewResponse{TotalMinutes: o.TotalMinutes, Distribution: shares}
}

func toSuggestionsResponse(suggestions []domain.UnlinkedEventSuggestion) []suggestionResponse {
	out := make([]suggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = suggestionResponse{
			EntryID:         s.EntryID.String(),
			Activity:        s.Activity,
			Date:            s.Date.Format(dateLayout),
			DurationMinutes: s.DurationMinutes,
			ClusterID:       s.ClusterID.String(),
			ClusterName:     s.ClusterName,
			Confidence:      s.Confidence,
			Keywords:        s.Keywords,
		}
	}
	return out
}

func toTrendResponse(series domain.TrendSeries) trendResponse {
	keys := make([]trendKeyResponse, len(series.Keys))
	for i, k := range series.Keys {
		keys[i] = trendKeyResponse{Key: k.Key, Name: k.Name, Color: k.Color, Order: k.Order}
	}

	buckets := make([]trendBucketResponse, len(series.Buckets))
	for i, b := range series.Buckets {
		buckets[i] = trendBucketResponse{Date: b.Date.Format(dateLayout), Hours: b.Hours}
	}

	return trendResponse{
		Granularity: series.Granularity.String(),
		Keys:        keys,
		Buckets:     buckets,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
