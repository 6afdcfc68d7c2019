package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /api/health                          - Health check")
	fmt.Println("  GET    /api/stats                           - Server statistics")
	fmt.Println("  POST   /api/resume/analyze                  - Score a resume (upload or JSON)")
	fmt.Println("  GET    /api/resume/report/{id}              - Download a resume report")
	fmt.Println("  POST   /api/job-match/analyze               - Match resume text to a job")
	fmt.Println("  POST   /api/job-match/analyze-files         - Match uploaded documents")
	fmt.Println("  POST   /api/job-match/find-similar          - Rank job listings for a profile")
	fmt.Println("  POST   /api/job-match/skill-recommendations - Skills to learn for a role")
	fmt.Println("  POST   /api/job-match/job-insights          - Market insights for listings")
	fmt.Println("  GET    /api/job-match/report/{id}           - Download a job match report")
	fmt.Println("  DELETE /api/sessions/{id}                   - Delete stored results")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if n := s.APIKeys.Len(); n > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", n)
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /api/resume and /api/job-match")
		if s.KeyWatcher != nil {
			fmt.Println("  - Keys are refreshed from Vault")
		}
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB), uploads up to %.1f MB\n",
			s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024), float64(s.MaxFileSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
