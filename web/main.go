package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ioreshnikov/rtrace/web/server"
)

func main() {
	// Publish credentials may live in a .env file; missing is fine
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory with JSON scene files")
	flag.Parse()

	publisher, err := publisherFromEnv()
	if err != nil {
		log.Printf("Error configuring publishing: %v", err)
		os.Exit(1)
	}
	if publisher == nil {
		log.Printf("Publishing disabled (set S3_BUCKET to enable)")
	}

	webServer := server.NewServer(*port, *scenesDir, publisher)

	log.Printf("Progressive Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

// publisherFromEnv builds the S3 publisher when a bucket is
// configured; without S3_BUCKET publishing stays disabled
func publisherFromEnv() (*server.Publisher, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	return server.NewPublisher(server.PublisherConfig{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    bucket,
	})
}
