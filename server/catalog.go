package server

import (
	"net/http"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/language"
)

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"agents": []map[string]any{
			{
				"name":         s.deps.Weather.Name(),
				"description":  "Provides weather analysis and irrigation recommendations",
				"capabilities": []string{"Weather forecasting", "Irrigation advice", "Soil moisture analysis"},
				"keywords":     s.deps.Weather.Keywords(),
			},
			{
				"name":         s.deps.Crop.Name(),
				"description":  "Provides crop selection and management advice",
				"capabilities": []string{"Crop recommendations", "Market analysis", "Pest management"},
				"keywords":     s.deps.Crop.Keywords(),
			},
			{
				"name":         s.deps.Finance.Name(),
				"description":  "Provides financial advice and government scheme information",
				"capabilities": []string{"Loan options", "Government schemes", "Market trends"},
				"keywords":     s.deps.Finance.Keywords(),
			},
		},
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"languages": language.Supported(),
		"default":   language.DefaultLanguage,
	})
}

func (s *Server) handleCrops(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"crops":   advisor.MajorCrops(),
		"seasons": advisor.Seasons(),
	})
}

func (s *Server) handleSoilTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"soil_types": advisor.SoilTypes(),
	})
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"weather_queries": []string{
			"When should I irrigate my wheat crop?",
			"What's the weather forecast for next week?",
			"Is it going to rain today?",
			"क्या आज बारिश होगी?",
			"मेरी गेहूं की फसल को कब सिंचाई करनी चाहिए?",
		},
		"crop_queries": []string{
			"Which crop should I plant this season?",
			"What are the best rice varieties for my area?",
			"How to control pests in cotton?",
			"इस मौसम में कौन सी फसल लगानी चाहिए?",
			"मेरे क्षेत्र के लिए सबसे अच्छे चावल की किस्में कौन सी हैं?",
		},
		"finance_queries": []string{
			"What loans are available for farmers?",
			"Tell me about PM-KISAN scheme",
			"How to get crop insurance?",
			"किसानों के लिए कौन से ऋण उपलब्ध हैं?",
			"PM-KISAN योजना के बारे में बताएं",
		},
	})
}
