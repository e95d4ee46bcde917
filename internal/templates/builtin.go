package templates

// Registry holds the built-in templates.
var Registry = []Template{
	{
		Name:        "Go REST API",
		Description: "JSON API on chi with graceful shutdown",
		Stack:       "Go",
		Category:    "api",
		InstallCmd:  "go mod tidy",
		RunCmd:      "go run .",
		Files: map[string]string{
			"go.mod": `module {{.Name}}

go 1.22

require github.com/go-chi/chi/v5 v5.0.12
`,
			"main.go": `package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"service": "{{.Name}}", "status": "ok"})
	})

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
`,
			".gitignore": `bin/
.env
`,
		},
	},
	{
		Name:        "Go CLI",
		Description: "Command-line tool scaffolded with cobra",
		Stack:       "Go",
		Category:    "cli",
		InstallCmd:  "go mod tidy",
		RunCmd:      "go run . --help",
		Files: map[string]string{
			"go.mod": `module {{.Name}}

go 1.22

require github.com/spf13/cobra v1.8.0
`,
			"main.go": `package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "{{.Name}}",
	Short: "{{.Name}} command-line tool",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Hello from {{.Name}}!")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
`,
		},
	},
	{
		Name:        "Python FastAPI",
		Description: "Async Python API with automatic OpenAPI docs",
		Stack:       "Python",
		Category:    "api",
		InstallCmd:  "pip install -r requirements.txt",
		RunCmd:      "uvicorn main:app --reload",
		Files: map[string]string{
			"requirements.txt": `fastapi
uvicorn[standard]
`,
			"main.py": `from fastapi import FastAPI

app = FastAPI(title="{{.Name}}")


@app.get("/health")
def health():
    return {"service": "{{.Name}}", "status": "ok"}
`,
			".gitignore": `__pycache__/
.venv/
.env
`,
		},
	},
	{
		Name:        "Node Express API",
		Description: "Minimal Express server with a health route",
		Stack:       "Node",
		Category:    "api",
		InstallCmd:  "npm install",
		RunCmd:      "npm start",
		Files: map[string]string{
			"package.json": `{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "main": "index.js",
  "scripts": {
    "start": "node index.js"
  },
  "dependencies": {
    "express": "^4.19.2"
  }
}
`,
			"index.js": `const express = require('express')

const app = express()
const port = process.env.PORT || 3000

app.get('/health', (req, res) => {
  res.json({ service: '{{.Name}}', status: 'ok' })
})

app.listen(port, () => {
  console.log('{{.Name}} listening on port ' + port)
})
`,
			".gitignore": `node_modules/
.env
`,
		},
	},
	{
		Name:        "React Landing Page",
		Description: "Vite + React single page with a hero and pricing section",
		Stack:       "Node",
		Category:    "web",
		InstallCmd:  "npm install",
		RunCmd:      "npm run dev",
		Files: map[string]string{
			"package.json": `{
  "name": "{{.Name}}",
  "version": "0.1.0",
  "private": true,
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "vite build"
  },
  "dependencies": {
    "react": "^18.3.1",
    "react-dom": "^18.3.1"
  },
  "devDependencies": {
    "@vitejs/plugin-react": "^4.3.1",
    "vite": "^5.3.4"
  }
}
`,
			"index.html": `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>{{.Name}}</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.jsx"></script>
  </body>
</html>
`,
			"src/main.jsx": `import React from 'react'
import { createRoot } from 'react-dom/client'

function App() {
  return (
    <main>
      <h1>{{.Name}}</h1>
      <p>Ship your next idea faster.</p>
    </main>
  )
}

createRoot(document.getElementById('root')).render(<App />)
`,
			".gitignore": `node_modules/
dist/
`,
		},
	},
	{
		Name:        "Static Portfolio",
		Description: "Plain HTML and CSS personal site, no build step",
		Stack:       "HTML",
		Category:    "web",
		RunCmd:      "python -m http.server 8000",
		Files: map[string]string{
			"index.html": `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>{{.Name}}</title>
    <link rel="stylesheet" href="style.css" />
  </head>
  <body>
    <header><h1>{{.Name}}</h1></header>
    <section id="projects"></section>
  </body>
</html>
`,
			"style.css": `body {
  font-family: system-ui, sans-serif;
  margin: 0 auto;
  max-width: 48rem;
  padding: 2rem;
}
`,
		},
	},
}
