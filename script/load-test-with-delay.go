package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// ScanRequest is the body of POST /user/{userId}/receipts/scan
type ScanRequest struct {
	QRData string `json:"qrData"`
}

// ScanResponse holds the fields of a scan result the load test checks
type ScanResponse struct {
	Success     bool   `json:"success"`
	TotalPoints int64  `json:"totalPoints"`
	NewBalance  *int64 `json:"newBalance"`
	Error       string `json:"error"`
	ErrorKind   string `json:"errorKind"`
}

// PointsResponse is the body of GET /user/{userId}/points
type PointsResponse struct {
	UserID uint64 `json:"userId"`
	Points int64  `json:"points"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	UserID       int
	Success      bool
	Points       int64
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	StatusCounts       map[int]int
	UserStats          map[int]int   // requests per user
	AwardedPoints      map[int]int64 // points awarded per user by successful scans
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// ScanScenario is one kind of TEST: receipt sent by the workers
type ScanScenario struct {
	Name   string
	QRData string
}

func main() {
	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of scans to send")
	userIDsStr := flag.String("u", "1,2,3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	// Parse user IDs
	var userIDs []int
	for _, idStr := range strings.Split(*userIDsStr, ",") {
		var id int
		if _, err := fmt.Sscanf(strings.TrimSpace(idStr), "%d", &id); err == nil && id > 0 {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []int{1}
	}

	// Mock receipts are accepted when fiscal.allowMockReceipts is on
	scenarios := []ScanScenario{
		{"Default fixture", "TEST:"},
		{"Exact match", "TEST:Maxi:Test Product 1:3:450.00"},
		{"Fuzzy match", "TEST:Idea:Coca Cola 0.5 L:2:240.00,Milka Alpine Milk 100 g:1:150.00"},
		{"Unmatched", "TEST:Lidl:Unknown Item:1:99.99"},
		{"Mixed", "TEST:Roda:Test Product 2:1:250.00,Jogurt 1L:4:480.00,Chips:1:120.00"},
	}

	client := &http.Client{Timeout: 10 * time.Second}

	startBalances := make(map[int]int64, len(userIDs))
	for _, id := range userIDs {
		points, err := fetchPoints(client, *baseURL, id)
		if err != nil {
			fmt.Printf("Could not read the balance of user %d: %v\n", id, err)
			return
		}
		startBalances[id] = points
	}

	fmt.Printf("Load testing receipt scans across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Receipt scenarios: %d\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		StatusCounts:    make(map[int]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		UserStats:       make(map[int]int),
		AwardedPoints:   make(map[int]int64),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	// Start worker goroutines
	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delayMs, userIDs, scenarios, jobs, results, stats)
		}()
	}

	// Fill the jobs channel
	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Collect results
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			stats.StatusCounts[result.StatusCode]++
			if result.Success {
				stats.SuccessfulRequests++
				stats.AwardedPoints[result.UserID] += result.Points
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			stats.MinResponseTime = min(stats.MinResponseTime, result.ResponseTime)
			stats.MaxResponseTime = max(stats.MaxResponseTime, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	// Print progress periodically
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
	verifyBalances(client, *baseURL, userIDs, startBalances, stats)
}

func worker(client *http.Client, baseURL string, delayMs int, userIDs []int,
	scenarios []ScanScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	for range jobs {
		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		stats.Lock.Lock()
		stats.UserStats[userID]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		results <- scan(client, baseURL, userID, scenario.QRData)
	}
}

func scan(client *http.Client, baseURL string, userID int, qrData string) TestResult {
	result := TestResult{UserID: userID}

	jsonData, err := json.Marshal(ScanRequest{QRData: qrData})
	if err != nil {
		result.Error = err
		return result
	}

	apiURL := fmt.Sprintf("%s/user/%d/receipts/scan", baseURL, userID)
	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		result.Error = err
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := client.Do(req)
	result.ResponseTime = time.Since(startTime)
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	var body ScanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		result.Error = fmt.Errorf("HTTP status code %d: undecodable body", resp.StatusCode)
		return result
	}

	result.Success = resp.StatusCode == http.StatusOK && body.Success
	if !result.Success {
		result.Error = fmt.Errorf("HTTP status code %d: %s", resp.StatusCode, body.ErrorKind)
		return result
	}
	result.Points = body.TotalPoints
	return result
}

func fetchPoints(client *http.Client, baseURL string, userID int) (int64, error) {
	resp, err := client.Get(fmt.Sprintf("%s/user/%d/points", baseURL, userID))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}

	var body PointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Points, nil
}

// verifyBalances checks that every user's balance grew by exactly the points of their successful scans
func verifyBalances(client *http.Client, baseURL string, userIDs []int, startBalances map[int]int64, stats *TestStats) {
	fmt.Println("\n----------------- BALANCE CHECK -----------------")
	consistent := true
	for _, id := range userIDs {
		final, err := fetchPoints(client, baseURL, id)
		if err != nil {
			fmt.Printf("User %d: could not read final balance: %v\n", id, err)
			consistent = false
			continue
		}

		expected := startBalances[id] + stats.AwardedPoints[id]
		status := "OK"
		if final != expected {
			status = "MISMATCH"
			consistent = false
		}
		fmt.Printf("User %d: start=%d awarded=%d final=%d expected=%d %s\n",
			id, startBalances[id], stats.AwardedPoints[id], final, expected, status)
	}

	if consistent {
		fmt.Println("✅ Balances match the awarded points")
	} else {
		fmt.Println("❌ Balances do not match the awarded points")
	}
}

func printResults(stats *TestStats) {
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	// Calculate percentiles
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := slices.Clone(stats.ResponseTimes)
		slices.Sort(sortedTimes)

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful scans / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all scans were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- STATUS CODES -----------------")
	codes := make([]int, 0, len(stats.StatusCounts))
	for code := range stats.StatusCounts {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		fmt.Printf("%d: %d\n", code, stats.StatusCounts[code])
	}

	fmt.Println("\n----------------- USER DISTRIBUTION -----------------")
	for userID, count := range stats.UserStats {
		fmt.Printf("User %d:    %d requests, %d points awarded\n", userID, count, stats.AwardedPoints[userID])
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-16s: %d requests\n", scenario, count)
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
