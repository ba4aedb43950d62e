package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Shared client with a cookie jar so every call rides the same session.
var client *http.Client

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadFile(url, filename string, content []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, nil, err
	}
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	jar, _ := cookiejar.New(nil)
	client = &http.Client{Jar: jar}

	color.Cyan("🚀 Starting Document Chat API Smoke Test\n")

	// 1. Upload a document
	color.Yellow("\n1. Upload sample document")
	sample := []byte("Program Alpha overview.\nProgram cost is $5M.\nDelivery expected Q3 2027.")
	resp, body, err := uploadFile("/document/v1/upload", "program_alpha.txt", sample)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var uploadResp map[string]interface{}
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	// 2. Upload the same content under a different name (should deduplicate)
	color.Yellow("\n2. Upload duplicate content")
	resp, body, err = uploadFile("/document/v1/upload", "alpha_copy.txt", sample)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	// 3. List session documents
	color.Yellow("\n3. List session documents")
	resp, body, err = sendRequest("GET", "/document/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	prettyPrint(listResp)

	// 4. List available prompts
	color.Yellow("\n4. List prompt library")
	resp, body, err = sendRequest("GET", "/chat/v1/prompts", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var promptsResp map[string]interface{}
	json.Unmarshal(body, &promptsResp)
	prettyPrint(promptsResp)

	// 5. Ask a question grounded in the uploaded document
	color.Yellow("\n5. Send chat")
	chatReq := map[string]interface{}{
		"message": "What is the program cost?",
		"sections": []map[string]string{
			{"title": "Executive Summary", "text": "Program Alpha modernizes logistics."},
		},
	}
	resp, body, err = sendRequest("POST", "/chat/v1", chatReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 6. Remove one document
	color.Yellow("\n6. Remove alpha_copy.txt")
	resp, body, err = sendRequest("DELETE", "/document/v1/alpha_copy.txt", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 7. Clear the session
	color.Yellow("\n7. Clear session")
	resp, body, err = sendRequest("DELETE", "/document/v1/session", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var clearResp map[string]interface{}
	json.Unmarshal(body, &clearResp)
	prettyPrint(clearResp)

	color.Cyan("\n✅ Smoke test finished")
}
