package view

import (
	"fmt"
	"html/template"
	"io"
	"math"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"pixels": func(f float64) int64 { return int64(math.Floor(f)) },
}).Parse(pageHTML))

// WritePage renders screen as a standalone HTML document.
func WritePage(w io.Writer, screen Screen) error {
	if err := pageTemplate.Execute(w, screen); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if eq .Kind "loading"}}
<meta http-equiv="refresh" content="1">
{{- end}}
<title>Photos</title>
<style>
body { margin: 22px 0 0 0; font-family: sans-serif; }
.centered { display: flex; justify-content: center; align-items: center; min-height: 80vh; }
.grid { display: grid; }
.grid img { display: block; }
.button { border-radius: 20px; padding: 10px; border: none; color: white; font-weight: bold; }
.button-open { background-color: #F194FF; position: fixed; bottom: 20px; left: 50%; transform: translateX(-50%); }
.button-close { background-color: #2196F3; }
.modal { position: fixed; inset: 0; display: flex; justify-content: center; align-items: center; }
.modal[hidden] { display: none; }
.modal-view { background: white; border-radius: 20px; padding: 35px; width: 75%; height: 75%; text-align: center; box-shadow: 0 2px 4px rgba(0,0,0,0.25); }
</style>
</head>
<body>
{{- if eq .Kind "loading"}}
<div class="centered"><div id="spinner" class="spinner" role="progressbar">Loading…</div></div>
{{- else if eq .Kind "error"}}
<div class="centered"><p id="failure">{{.Message}}</p></div>
{{- else}}
<div id="grid" class="grid" style="grid-template-columns: repeat({{.Columns}}, auto);">
{{- range .Cells}}
<img data-id="{{.Photo.ID}}" alt="{{.Photo.Author}}" src="{{.ImageURI}}" width="{{pixels .Size}}" height="{{pixels .Size}}">
{{- end}}
</div>
<div id="modal" class="modal"{{if not .Modal.Visible}} hidden{{end}}>
<div class="modal-view">
<p class="modal-text">{{.Modal.Text}}</p>
<button id="hide-modal" class="button button-close">Hide Modal</button>
</div>
</div>
<button id="show-modal" class="button button-open">Show Modal</button>
<script>
(function () {
  var grid = document.getElementById("grid");
  var modal = document.getElementById("modal");
  var pending = false;

  function post(path) {
    return fetch(path, { method: "POST" }).then(function (r) { return r.json(); });
  }

  function refresh() {
    return fetch("/api/screen").then(function (r) { return r.json(); }).then(function (s) {
      var cells = s.cells || [];
      var added = 0;
      for (var i = grid.children.length; i < cells.length; i++) {
        var img = document.createElement("img");
        img.dataset.id = cells[i].photo.id;
        img.alt = cells[i].photo.author;
        img.src = cells[i].image_uri;
        img.width = Math.floor(cells[i].size);
        img.height = Math.floor(cells[i].size);
        grid.appendChild(img);
        added++;
      }
      return added;
    });
  }

  // Also runs when the content is shorter than the viewport, since no scroll event fires then.
  function nearEnd() {
    var remaining = document.body.scrollHeight - (window.innerHeight + window.scrollY);
    if (pending || remaining > window.innerHeight / 2) {
      return;
    }
    pending = true;
    var added = 0;
    post("/api/end-reached").then(function () {
      return new Promise(function (resolve) { setTimeout(resolve, 500); });
    }).then(refresh).then(function (n) { added = n; }).finally(function () {
      pending = false;
      if (added > 0) {
        nearEnd();
      }
    });
  }

  window.addEventListener("scroll", nearEnd);
  nearEnd();

  document.getElementById("show-modal").addEventListener("click", function () {
    post("/api/modal/show").then(function () { modal.hidden = false; });
  });
  document.getElementById("hide-modal").addEventListener("click", function () {
    post("/api/modal/hide").then(function () { modal.hidden = true; });
  });
})();
</script>
{{- end}}
</body>
</html>
`
