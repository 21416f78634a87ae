package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type LoadTestConfig struct {
	BaseURL       string
	TotalRequests int
	Concurrency   int
	Duration      time.Duration
}

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalLatency    int64
	MinLatency      int64
	MaxLatency      int64
	Errors          sync.Map
}

type envelope struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Service base URL")
	requests := flag.Int("requests", 1000, "Total number of requests")
	concurrency := flag.Int("concurrency", 10, "Number of parallel requests")
	duration := flag.Duration("duration", 0, "Test duration (0 = use -requests)")
	operation := flag.String("operation", "create", "Operation type: dish, create, get, list, update, delete, mixed")
	flag.Parse()

	config := LoadTestConfig{
		BaseURL:       *baseURL,
		TotalRequests: *requests,
		Concurrency:   *concurrency,
		Duration:      *duration,
	}

	fmt.Printf("Starting load test\n")
	fmt.Printf("URL: %s\n", config.BaseURL)
	fmt.Printf("Operation: %s\n", *operation)
	if config.Duration > 0 {
		fmt.Printf("Duration: %v\n", config.Duration)
	} else {
		fmt.Printf("Requests: %d\n", config.TotalRequests)
	}
	fmt.Printf("Concurrency: %d\n\n", config.Concurrency)

	stats := &Stats{
		MinLatency: int64(^uint64(0) >> 1),
	}

	var op func(index int64)
	switch *operation {
	case "dish":
		op = func(int64) { createDish(config.BaseURL, stats) }
	case "create":
		op = func(int64) { createOrder(config.BaseURL, stats) }
	case "list":
		op = func(int64) { makeRequest(http.MethodGet, config.BaseURL+"/orders", nil, stats) }
	case "get", "update", "mixed":
		ids := prepareOrders(config.BaseURL, 100)
		if len(ids) == 0 {
			fmt.Println("Failed to create orders for test")
			return
		}
		fmt.Printf("Created %d orders for testing\n\n", len(ids))
		op = func(index int64) {
			id := ids[index%int64(len(ids))]
			switch {
			case *operation == "get":
				makeRequest(http.MethodGet, config.BaseURL+"/orders/"+id, nil, stats)
			case *operation == "update":
				updateOrder(config.BaseURL, id, stats)
			default:
				mixed(config.BaseURL, id, index, stats)
			}
		}
	case "delete":
		op = func(int64) {
			id := createOrderAndGetID(config.BaseURL)
			if id == "" {
				atomic.AddInt64(&stats.FailedRequests, 1)
				return
			}
			makeRequest(http.MethodDelete, config.BaseURL+"/orders/"+id, nil, stats)
		}
	default:
		fmt.Printf("Unknown operation: %s\n", *operation)
		return
	}

	startTime := time.Now()
	run(config, op)
	printResults(stats, time.Since(startTime))
}

// run calls op until the request budget or the duration is used up, with at
// most config.Concurrency calls in flight.
func run(config LoadTestConfig, op func(index int64)) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.Concurrency)

	requestCount := int64(0)
	endTime := time.Now().Add(config.Duration)

	for (config.Duration <= 0 || !time.Now().After(endTime)) &&
		(config.Duration != 0 || requestCount < int64(config.TotalRequests)) {
		wg.Add(1)
		semaphore <- struct{}{}
		idx := atomic.AddInt64(&requestCount, 1)

		go func(index int64) {
			defer wg.Done()
			defer func() { <-semaphore }()
			op(index)
		}(idx)
	}

	wg.Wait()
}

func mixed(baseURL, id string, index int64, stats *Stats) {
	switch op := index % 10; {
	case op < 3:
		createOrder(baseURL, stats)
	case op < 4:
		createDish(baseURL, stats)
	case op < 7:
		makeRequest(http.MethodGet, baseURL+"/orders/"+id, nil, stats)
	case op < 9:
		makeRequest(http.MethodGet, baseURL+"/dishes", nil, stats)
	default:
		updateOrder(baseURL, id, stats)
	}
}

func dishPayload() map[string]any {
	return map[string]any{"data": map[string]any{
		"name":        fmt.Sprintf("Dish-%d", time.Now().UnixNano()),
		"description": "load test dish",
		"price":       12,
		"image_url":   "https://example.com/dish.jpg",
	}}
}

func orderPayload(status string) map[string]any {
	data := map[string]any{
		"deliverTo":    "1 Load Test Way",
		"mobileNumber": "555-0100",
		"dishes": []map[string]any{
			{"id": "load-dish", "name": "Load dish", "price": 12, "quantity": 2},
		},
	}
	if status != "" {
		data["status"] = status
	}
	return map[string]any{"data": data}
}

func createDish(baseURL string, stats *Stats) string {
	return makeRequest(http.MethodPost, baseURL+"/dishes", dishPayload(), stats)
}

func createOrder(baseURL string, stats *Stats) string {
	return makeRequest(http.MethodPost, baseURL+"/orders", orderPayload(""), stats)
}

// updateOrder keeps orders pending so the delete and mixed runs can reuse
// them.
func updateOrder(baseURL, id string, stats *Stats) string {
	return makeRequest(http.MethodPut, baseURL+"/orders/"+id, orderPayload("pending"), stats)
}

func prepareOrders(baseURL string, n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if id := createOrderAndGetID(baseURL); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func createOrderAndGetID(baseURL string) string {
	body := makeRequestRaw(http.MethodPost, baseURL+"/orders", orderPayload(""))
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ""
	}
	return env.Data.ID
}

func newRequest(method, url string, payload any) (*http.Request, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func makeRequest(method, url string, payload any, stats *Stats) string {
	start := time.Now()
	atomic.AddInt64(&stats.TotalRequests, 1)

	req, err := newRequest(method, url, payload)
	if err != nil {
		recordError(stats, err)
		return ""
	}

	resp, err := client.Do(req)
	if err != nil {
		recordError(stats, err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	recordLatency(stats, time.Since(start).Milliseconds())

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		atomic.AddInt64(&stats.SuccessRequests, 1)
		return string(body)
	}
	recordError(stats, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)))
	return ""
}

func makeRequestRaw(method, url string, payload any) string {
	req, err := newRequest(method, url, payload)
	if err != nil {
		return ""
	}

	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func recordLatency(stats *Stats, latency int64) {
	atomic.AddInt64(&stats.TotalLatency, latency)

	for {
		old := atomic.LoadInt64(&stats.MinLatency)
		if latency >= old || atomic.CompareAndSwapInt64(&stats.MinLatency, old, latency) {
			break
		}
	}

	for {
		old := atomic.LoadInt64(&stats.MaxLatency)
		if latency <= old || atomic.CompareAndSwapInt64(&stats.MaxLatency, old, latency) {
			break
		}
	}
}

func recordError(stats *Stats, err error) {
	atomic.AddInt64(&stats.FailedRequests, 1)
	val, _ := stats.Errors.LoadOrStore(err.Error(), new(int64))
	atomic.AddInt64(val.(*int64), 1)
}

func printResults(stats *Stats, elapsed time.Duration) {
	total := atomic.LoadInt64(&stats.TotalRequests)
	success := atomic.LoadInt64(&stats.SuccessRequests)
	failed := atomic.LoadInt64(&stats.FailedRequests)
	totalLatency := atomic.LoadInt64(&stats.TotalLatency)
	minLatency := atomic.LoadInt64(&stats.MinLatency)
	maxLatency := atomic.LoadInt64(&stats.MaxLatency)

	if total == 0 {
		fmt.Println("No requests were sent")
		return
	}

	fmt.Printf("\nLoad Test Results\n")
	fmt.Printf("===================================================\n")
	fmt.Printf("Total time:           %v\n", elapsed)
	fmt.Printf("Total requests:       %d\n", total)
	fmt.Printf("Successful:           %d (%.2f%%)\n", success, float64(success)/float64(total)*100)
	fmt.Printf("Failed:               %d (%.2f%%)\n", failed, float64(failed)/float64(total)*100)
	fmt.Printf("\n")
	fmt.Printf("Throughput:           %.2f req/sec\n", float64(total)/elapsed.Seconds())
	fmt.Printf("\n")
	fmt.Printf("Latency:\n")
	fmt.Printf("  Average:            %d ms\n", totalLatency/total)
	fmt.Printf("  Minimum:            %d ms\n", minLatency)
	fmt.Printf("  Maximum:            %d ms\n", maxLatency)

	if failed > 0 {
		fmt.Printf("\nErrors:\n")
		stats.Errors.Range(func(key, value any) bool {
			fmt.Printf("  [%d] %s\n", atomic.LoadInt64(value.(*int64)), key.(string))
			return true
		})
	}
	fmt.Printf("===================================================\n")
}
