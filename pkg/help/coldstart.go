package help

const ColdstartYAML = `# tweetstats Quick Start

input:
  format: "CSV with a header row; one record per row"
  required_columns:
    text: "tweet text (--text-column)"
    sentiment: "cluster label (--cluster-column)"

commands:
  process: |
    tweetstats process --input data/twitter_reduced.csv --output data/twitter_processed.csv

  process_parallel: |
    tweetstats process --workers 4 --no-render

  process_with_history: |
    tweetstats process --db tweetstats-results/tweetstats.db

  inspect_first_rows: |
    tweetstats inspect --rows 5 data/twitter_reduced.csv

  inspect_last_rows: |
    tweetstats inspect --last data/twitter_processed.csv

  vocabulary: |
    tweetstats vocab --vocab 10

  cluster_report: |
    tweetstats clusters --format yaml --top 20
    tweetstats clusters --samples 3

  list_runs: |
    tweetstats runs

  run_details: |
    tweetstats runs show 01HQ...
    tweetstats runs show --fields run_id,clusters

  delete_run: |
    tweetstats runs delete 01HQ...

pipeline:
  - "strip markup (optional, --strip-markup)"
  - "detect language (optional, --detect-language --languages en,es)"
  - "normalize: urls, non-ascii, @mentions, symbols, digits, lowercase, trim"
  - "remove stopwords"
  - "term frequency per record, stored as JSON in term_frequency"
  - "cluster count, empty-text report, drop empty texts"
  - "aggregate term frequency per cluster"
  - "word cloud + top-N histogram per cluster"

key_files:
  - "data/twitter_processed.csv (processed records)"
  - "tweetstats-results/index.yaml (all runs, newest first)"
  - "tweetstats-results/runs/{run_id}/summary.yaml (run manifest)"
  - "tweetstats-results/runs/{run_id}/word_cloud_plots/cluster_{label}.png"
  - "tweetstats-results/runs/{run_id}/histograms/histogram_cluster{label}.png"

configuration:
  order: "defaults < --config YAML < .env < TWEETSTATS_* env < flags"
  examples:
    - "TWEETSTATS_TOP_COUNT=30"
    - "TWEETSTATS_LANGUAGES='en es fr'"

error_behavior:
  - "Missing column: fails on the first record without it"
  - "Malformed CSV: fails with the line number"
  - "Plot failures: logged and listed in summary.yaml; the run still succeeds"
  - "Exit codes: 0=success, 1=failure"
`
