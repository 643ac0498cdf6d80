package handlers

import (
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
)

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("ERROR: failed to marshal response body: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"internal error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}
}

// badRequest is the synchronous validation failure response: {error}.
func badRequest(message string) events.APIGatewayProxyResponse {
	log.Printf("Bad request: %s", message)
	return jsonResponse(400, map[string]string{"error": message})
}

// serverError is the unexpected failure response: {error, detail}.
func serverError(message string, err error) events.APIGatewayProxyResponse {
	log.Printf("ERROR: %s: %v", message, err)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return jsonResponse(500, map[string]string{"error": message, "detail": detail})
}
