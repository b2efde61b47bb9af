package web

import "html/template"

var pageTmpl = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Tickets</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
nav a { margin-right: 1rem; }
nav a.active { font-weight: bold; }
.search { margin: 1rem 0; }
.search input { width: 24rem; padding: .4rem; }
.grid { display: grid; grid-template-columns: 14rem 6rem 5rem 14rem 1fr; gap: .25rem 1rem; }
.labels { font-weight: bold; border-bottom: 1px solid #ccc; padding-bottom: .25rem; }
.empty { font-style: italic; color: #666; margin-top: 1rem; }
.error { color: #b00; }
.status { color: #666; font-size: .85rem; margin-top: 1rem; }
</style>
</head>
<body>
<nav>
{{- range .Collaborators}}
<a href="/?collaborator={{.Id}}"{{if eq .Id $.CollaboratorId}} class="active"{{end}}>{{.Name}}</a>
{{- end}}
</nav>
<form class="search" method="get" action="/">
<input type="hidden" name="collaborator" value="{{.CollaboratorId}}">
<input type="search" name="q" value="{{.Search}}" placeholder="{{.Placeholder}}" autofocus>
</form>
<div class="grid labels">{{range .Headers}}<div>{{.}}</div>{{end}}</div>
<div class="list" id="list">
{{- if .EmptyText}}
<p class="empty">{{.EmptyText}}</p>
{{- else}}
{{- range .Rows}}
<div class="grid row">{{range .}}<div>{{.}}</div>{{end}}</div>
{{- end}}
{{- end}}
</div>
<p class="status error" id="error">{{.Err}}</p>
<p class="status" id="updated">{{if .UpdatedAt}}atualizado às {{.UpdatedAt}}{{end}}</p>
<script>
const collaborator = {{.CollaboratorId}};
const search = {{.Search}};

function render(data) {
  const list = document.getElementById('list');
  list.replaceChildren();
  if (data.emptyText) {
    const p = document.createElement('p');
    p.className = 'empty';
    p.textContent = data.emptyText;
    list.append(p);
  }
  for (const cells of data.emptyText ? [] : data.cells) {
    const row = document.createElement('div');
    row.className = 'grid row';
    for (const c of cells) {
      const div = document.createElement('div');
      div.textContent = c;
      row.append(div);
    }
    list.append(row);
  }
  document.getElementById('error').textContent = data.error || '';
  if (data.updatedAt) {
    document.getElementById('updated').textContent =
      'atualizado às ' + new Date(data.updatedAt).toLocaleTimeString('pt-BR');
  }
}

document.addEventListener('visibilitychange', () => {
  if (document.hidden || !collaborator) return;
  const params = new URLSearchParams({ collaborator, q: search });
  fetch('/refresh?' + params, { method: 'POST' })
    .then((res) => res.json())
    .then(render)
    .catch(() => {});
});
</script>
</body>
</html>
`))

type pageData struct {
	Collaborators  []Collaborator
	CollaboratorId string
	Search         string
	Placeholder    string
	Headers        []string
	Rows           [][]string
	EmptyText      string
	Err            string
	UpdatedAt      string
}
