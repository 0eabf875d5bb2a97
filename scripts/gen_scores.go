// gen_scores.go generates a synthetic tab-separated score file and
// optionally uploads it to a running paretod as a dataset.
//
// Usage:
//
//	go run scripts/gen_scores.go -n 5000 -dims 4 -winners 10 -out scores.tsv
//	go run scripts/gen_scores.go -n 5000 -api http://localhost:8700 -name synthetic
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

func main() {
	n := flag.Int("n", 1000, "number of rows")
	dims := flag.Int("dims", 4, "score columns per row")
	winners := flag.Int("winners", 5, "rows boosted onto the front")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "", "write the file here instead of stdout")
	apiURL := flag.String("api", "", "paretod base URL; when set the file is uploaded")
	name := flag.String("name", "synthetic", "dataset name used for the upload")
	flag.Parse()

	if *n < 1 || *dims < 1 || *winners < 0 || *winners > *n {
		log.Fatalf("invalid sizes: n=%d dims=%d winners=%d", *n, *dims, *winners)
	}

	var buf bytes.Buffer
	generate(&buf, rand.New(rand.NewPCG(*seed, *seed)), *n, *dims, *winners)

	if *out != "" {
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			log.Fatalf("write %s: %v", *out, err)
		}
	} else if *apiURL == "" {
		os.Stdout.Write(buf.Bytes())
	}

	if *apiURL != "" {
		if err := upload(*apiURL, *name, buf.Bytes()); err != nil {
			log.Fatal(err)
		}
	}
}

// shapes cycle across columns so dimensions have different distributions.
var shapes = []func(r *rand.Rand) float64{
	func(r *rand.Rand) float64 { return r.Float64() * 100 },
	func(r *rand.Rand) float64 { return 1 + math.Sin(r.Float64()*math.Pi) },
	func(r *rand.Rand) float64 { return math.Pow(2, r.Float64()*10) },
	func(r *rand.Rand) float64 { return 1 / (1 - r.Float64()) },
}

// generate writes a header and n rows. Winner rows are scaled by 1000 on
// every dimension so they stand out from the background noise.
func generate(w io.Writer, r *rand.Rand, n, dims, winners int) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	bw.WriteString("name")
	for d := 0; d < dims; d++ {
		fmt.Fprintf(bw, "\tscore%d", d)
	}
	bw.WriteByte('\n')

	for i := 0; i < n; i++ {
		name := "datum" + strconv.Itoa(i)
		scale := 1.0
		if i < winners {
			name += "_winner"
			scale = 1000
		}
		bw.WriteString(name)
		for d := 0; d < dims; d++ {
			v := shapes[d%len(shapes)](r) * scale
			bw.WriteByte('\t')
			bw.WriteString(strconv.FormatFloat(v, 'f', 3, 64))
		}
		bw.WriteByte('\n')
	}
}

func upload(apiURL, name string, body []byte) error {
	endpoint := apiURL + "/api/v1/datasets?name=" + url.QueryEscape(name)
	resp, err := http.Post(endpoint, "text/tab-separated-values", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload: %s: %s", resp.Status, msg)
	}
	var created struct {
		ID    string `json:"dataset_id"`
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	fmt.Printf("created dataset %s with %d items\n", created.ID, len(created.Items))
	return nil
}
