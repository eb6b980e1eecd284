// Command tutorstub serves canned hint and evaluation replies so the board
// can be exercised without the real tutor backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	lannet "ChalkBoard/internal/net"
	"ChalkBoard/internal/tutor"
)

const maxUpload = 16 << 20

func main() {
	port := flag.Int("port", 8000, "port to listen on")
	advertise := flag.Bool("mdns", true, "announce the service over mDNS")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /give-hint", handleHint)
	mux.HandleFunc("POST /submit-work", handleSubmit)

	if *advertise {
		server, err := lannet.Advertise(lannet.TutorService, *port, []string{"chalkboard tutor stub"})
		if err != nil {
			log.Printf("[STUB] mDNS disabled: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	log.Printf("[STUB] Reachable at %s", lannet.ServiceURL(*port))
	log.Printf("[STUB] Listening on :%d", *port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port), mux))
}

type submission struct {
	problem       string
	width, height int
}

// readSubmission checks the multipart form the board sends.
func readSubmission(r *http.Request) (submission, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return submission{}, err
	}
	sub := submission{problem: r.FormValue("problem")}
	if sub.problem == "" {
		return sub, fmt.Errorf("missing problem")
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return sub, fmt.Errorf("missing file: %w", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return sub, fmt.Errorf("file is not a PNG: %w", err)
	}
	sub.width, sub.height = cfg.Width, cfg.Height
	return sub, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[STUB] write failed: %v", err)
	}
}

func handleHint(w http.ResponseWriter, r *http.Request) {
	sub, err := readSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("[STUB] Hint for %q (%dx%d)", sub.problem, sub.width, sub.height)
	writeJSON(w, map[string]string{
		"hint": "Start by writing down what you **know** and what you need to **find**.\n\n" +
			"- Break the problem into smaller steps\n- Check each step before moving on",
	})
}

func handleSubmit(w http.ResponseWriter, r *http.Request) {
	sub, err := readSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Deterministic score so repeated submissions of the same problem agree.
	score := float64(5 + len(sub.problem)%6)
	log.Printf("[STUB] Evaluated %q: %.0f", sub.problem, score)
	writeJSON(w, map[string]any{
		"problem": sub.problem,
		"evaluation": map[string]any{
			"analysis":           "The working is laid out clearly on the board.",
			"errors":             []string{},
			"improvements":       "Label each step so the reasoning is easy to follow.",
			"concepts_to_review": []string{"Showing intermediate results"},
		},
		"correct":         score >= 8,
		"score":           score,
		"grade":           tutor.GradeFor(score),
		"submission_time": time.Now().UTC().Format(time.RFC3339),
	})
}
