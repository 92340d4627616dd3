package web

// printTemplate renders the print layout: one landscape page per content
// item, text on the left, the item's first screenshot in a phone frame on
// the right.
const printTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.ProjectTitle}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: -apple-system, 'Segoe UI', sans-serif; background: #fff; color: #111; }
    .page { display: flex; flex-direction: row; align-items: center; justify-content: space-between;
            gap: 5rem; padding: 3rem 5rem; min-height: 100vh; page-break-after: always; }
    .page:last-child { page-break-after: auto; }
    .text { width: 50%; }
    .category { color: #004a99; font-weight: 900; font-size: 0.75rem; letter-spacing: 0.2em;
                text-transform: uppercase; margin-bottom: 1rem; }
    .title { font-size: 2.5rem; font-weight: 700; line-height: 1.2; margin-bottom: 2rem; white-space: pre-line; }
    .rule { width: 4rem; height: 3px; background: #004a99; margin-bottom: 2rem; }
    .description { font-size: 1.1rem; line-height: 1.7; color: #333; }
    .frame-area { width: 50%; display: flex; justify-content: center; }
    .phone { width: 300px; aspect-ratio: 9 / 19; background: #fff; border: 8px solid #000;
             border-radius: 3rem; overflow: hidden; }
    .phone img { width: 100%; height: 100%; object-fit: cover; object-position: top; display: block; }
    .phone .empty { width: 100%; height: 100%; background: #f4f4f4; }
    header.site { padding: 2rem 5rem 0; display: flex; align-items: center; gap: 1rem; }
    header.site img { height: 2rem; }
    header.site .project { font-weight: 700; }
  </style>
</head>
<body>
  <header class="site">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="logo">{{end}}
    <span class="project">{{.ProjectTitle}}</span>
  </header>
  {{range .Items}}
  <div class="page">
    <div class="text">
      <div class="category">{{.Category}}</div>
      <h2 class="title">{{.Title}}</h2>
      <div class="rule"></div>
      <div class="description">{{.Description}}</div>
    </div>
    <div class="frame-area">
      <div class="phone">
        {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{else}}<div class="empty"></div>{{end}}
      </div>
    </div>
  </div>
  {{end}}
</body>
</html>
`
