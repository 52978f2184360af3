package site

// layoutTemplate wraps every page. Pages define "main".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="ko" data-theme="{{.Theme}}" data-theme-stored="{{.ThemeStored}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="{{.Description}}">
  <title>{{.Title}}</title>
  <script>
    (function() {
      var html = document.documentElement;
      if (html.getAttribute("data-theme-stored") === "true" || !window.matchMedia) return;
      html.setAttribute("data-theme", window.matchMedia("(prefers-color-scheme: light)").matches ? "light" : "dark");
    })();
  </script>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header class="site-header">
    <a href="/" class="site-title">{{.SiteTitle}}</a>
    <button class="theme-toggle" id="themeToggle" aria-label="테마 전환">
      <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/>
      </svg>
      <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
        <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
      </svg>
    </button>
  </header>
  <main class="content">
    {{template "main" .}}
  </main>
  <script src="/static/app.js"></script>
</body>
</html>{{end}}`

// indexTemplate is the post listing with the tag bar and search box.
const indexTemplate = `{{define "main"}}
<form class="search" action="/" method="get" role="search">
  <input type="search" id="searchInput" name="q" value="{{.Query}}" placeholder="검색 (Ctrl+K)" autocomplete="off">
  {{if .ActiveTag}}<input type="hidden" name="tag" value="{{.ActiveTag}}">{{end}}
</form>
{{if .Tags}}
<nav class="tags" id="tagsContainer">
  {{range .Tags}}<a class="tag{{if .Active}} active{{end}}" href="{{.Href}}" data-tag="{{.Name}}">#{{.Name}}</a>{{end}}
</nav>
{{end}}
<div class="loading-state" id="loadingState" hidden>
  <div class="spinner"></div>
</div>
<section class="posts" id="postsList" data-count="{{.Count}}">
  {{template "cards" .Cards}}
</section>
{{end}}`

// cardsTemplate renders the visible posts. It is also sent over the live
// search socket, so it must not depend on page-level data.
const cardsTemplate = `{{define "cards"}}{{if .}}{{range .}}
<a href="{{.Href}}" class="post-card">
  <h2 class="post-card-title">{{.Title}}</h2>
  <div class="post-card-meta">
    <time class="post-card-date">{{.Date}}</time>
    {{if .Category}}<span class="post-card-category">{{.Category}}</span>{{end}}
  </div>
  {{if .Excerpt}}<p class="post-card-excerpt">{{.Excerpt}}</p>{{end}}
  {{if .Tags}}<div class="post-card-tags">{{range .Tags}}<span class="post-card-tag">#{{.}}</span>{{end}}</div>{{end}}
</a>{{end}}{{else}}
<div class="empty-state" id="emptyState">
  <div class="empty-icon">📭</div>
  <p>게시글이 없습니다.</p>
</div>{{end}}{{end}}`

// postTemplate renders one post: metadata, body, then the comment widget.
const postTemplate = `{{define "main"}}
<article class="post">
  <header class="post-header">
    <h1 class="post-title" id="postTitle">{{.Heading}}</h1>
    <div class="post-meta">
      {{if .Date}}<time class="post-date" id="postDate">{{.Date}}</time>{{end}}
      {{if .Category}}<span class="post-category" id="postCategory">{{.Category}}</span>{{end}}
    </div>
    {{if .Tags}}<div class="post-tags" id="postTags">{{range .Tags}}<span class="tag">#{{.}}</span>{{end}}</div>{{end}}
  </header>
  <div class="post-content" id="postContent">
    {{if .RenderFailed}}<p>게시글을 렌더링하는 중 오류가 발생했습니다.</p>{{else}}{{.Body}}{{end}}
  </div>
  {{with .Comments}}
  <section class="comments" id="giscusContainer" data-origin="{{.Origin}}" data-light-message="{{.LightMessage}}" data-dark-message="{{.DarkMessage}}" data-light-theme="{{.LightTheme}}" data-dark-theme="{{.DarkTheme}}">
    <template id="giscusScript">
      <script src="{{.ScriptURL}}"{{range .Attrs}} {{.Name}}="{{.Value}}"{{end}} crossorigin="anonymous" async></script>
    </template>
  </section>
  {{end}}
  <a href="/" class="back-link">목록으로 돌아가기</a>
</article>
{{end}}`

// errorTemplate is the terminal page for a post that cannot be shown.
const errorTemplate = `{{define "main"}}
<article class="post">
  <h1 class="post-title">오류</h1>
  <div class="empty-state">
    <div class="empty-icon">⚠️</div>
    <p>{{.Message}}</p>
    <a href="/" class="back-link">목록으로 돌아가기</a>
  </div>
</article>
{{end}}`

// cssContent is the stylesheet for every page.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f6f8fa;
  --text: #1f2328;
  --text-secondary: #59636e;
  --text-muted: #818b98;
  --border: #d1d9e0;
  --accent: #0969da;
  --accent-light: #ddf4ff;
  --code-bg: #f6f8fa;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --content-max-width: 760px;
}

[data-theme="dark"] {
  --bg: #22272e;
  --bg-secondary: #2d333b;
  --text: #adbac7;
  --text-secondary: #909dab;
  --text-muted: #768390;
  --border: #444c56;
  --accent: #539bf5;
  --accent-light: #1b2b41;
  --code-bg: #2d333b;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "Apple SD Gothic Neo", "Noto Sans KR", sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  transition: background 0.2s, color 0.2s;
}

a { color: var(--accent); text-decoration: none; }

.site-header {
  display: flex;
  align-items: center;
  justify-content: space-between;
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 1.5rem 1rem;
}
.site-title { font-size: 1.25rem; font-weight: 700; color: var(--text); }

.theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 8px;
  color: var(--text-secondary);
  cursor: pointer;
  padding: 6px;
  display: flex;
}
.theme-toggle:hover { color: var(--accent); }
[data-theme="dark"] .sun-icon { display: inline; }
[data-theme="dark"] .moon-icon { display: none; }
[data-theme="light"] .sun-icon { display: none; }
[data-theme="light"] .moon-icon { display: inline; }

.content { max-width: var(--content-max-width); margin: 0 auto; padding: 0 1rem 4rem; }

.search input {
  width: 100%;
  padding: 0.6rem 0.9rem;
  border: 1px solid var(--border);
  border-radius: 8px;
  background: var(--bg-secondary);
  color: var(--text);
  font-size: 1rem;
}
.search input:focus { outline: 2px solid var(--accent); border-color: transparent; }

.tags { display: flex; flex-wrap: wrap; gap: 0.5rem; margin: 1rem 0 1.5rem; }
.tag {
  padding: 0.2rem 0.7rem;
  border: 1px solid var(--border);
  border-radius: 999px;
  font-size: 0.85rem;
  color: var(--text-secondary);
}
.tag.active, .tag:hover { background: var(--accent-light); color: var(--accent); border-color: var(--accent); }

.posts { display: flex; flex-direction: column; gap: 1rem; }
.post-card {
  display: block;
  padding: 1.25rem;
  border: 1px solid var(--border);
  border-radius: 10px;
  background: var(--bg-secondary);
  color: var(--text);
  box-shadow: var(--shadow);
}
.post-card:hover { border-color: var(--accent); }
.post-card-title { font-size: 1.2rem; margin-bottom: 0.25rem; }
.post-card-meta { display: flex; gap: 0.75rem; font-size: 0.85rem; color: var(--text-muted); }
.post-card-category { color: var(--accent); }
.post-card-excerpt { margin-top: 0.5rem; color: var(--text-secondary); }
.post-card-tags { display: flex; flex-wrap: wrap; gap: 0.4rem; margin-top: 0.6rem; font-size: 0.8rem; color: var(--text-muted); }

.empty-state {
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 0.5rem;
  padding: 3rem 1rem;
  color: var(--text-muted);
}
.empty-icon { font-size: 2rem; }

.loading-state { display: flex; justify-content: center; padding: 1rem; }
.loading-state[hidden] { display: none; }
.spinner {
  width: 24px; height: 24px;
  border: 3px solid var(--border);
  border-top-color: var(--accent);
  border-radius: 50%;
  animation: spin 0.8s linear infinite;
}
@keyframes spin { to { transform: rotate(360deg); } }

.post-header { margin-bottom: 2rem; }
.post-title { font-size: 2rem; line-height: 1.3; }
.post-meta { display: flex; gap: 0.75rem; color: var(--text-muted); font-size: 0.9rem; margin-top: 0.5rem; }
.post-tags { display: flex; flex-wrap: wrap; gap: 0.4rem; margin-top: 0.75rem; }

.post-content h1, .post-content h2, .post-content h3 { margin: 2rem 0 0.75rem; }
.post-content p, .post-content ul, .post-content ol, .post-content blockquote, .post-content table { margin-bottom: 1rem; }
.post-content ul, .post-content ol { padding-left: 1.5rem; }
.post-content blockquote { border-left: 4px solid var(--border); padding-left: 1rem; color: var(--text-secondary); }
.post-content code { background: var(--code-bg); padding: 0.1rem 0.35rem; border-radius: 4px; font-size: 0.9em; }
.post-content pre { overflow-x: auto; padding: 1rem; border-radius: 8px; margin-bottom: 1rem; }
.post-content pre code { background: none; padding: 0; }
.post-content table { border-collapse: collapse; width: 100%; }
.post-content th, .post-content td { border: 1px solid var(--border); padding: 0.4rem 0.75rem; }
.post-content img { max-width: 100%; }

.comments { margin-top: 3rem; }
.back-link { display: inline-block; margin-top: 2rem; }
`

// jsContent handles the theme toggle, live search, and loading the comment
// widget with the theme the page shows. Listing and posts work without it.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;

  // ===== Theme =====
  function applyTheme(theme, stored) {
    html.setAttribute("data-theme", theme);
    if (stored) html.setAttribute("data-theme-stored", "true");
  }

  var toggle = document.getElementById("themeToggle");
  if (toggle) {
    toggle.addEventListener("click", function() {
      fetch("/api/theme/toggle", {
        method: "POST",
        credentials: "same-origin",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ current: html.getAttribute("data-theme") })
      })
        .then(function(r) { return r.json(); })
        .then(function(body) { if (body.theme) applyTheme(body.theme, true); })
        .catch(function(err) { console.error("theme toggle failed:", err); });
    });
  }

  if (window.matchMedia) {
    window.matchMedia("(prefers-color-scheme: light)").addEventListener("change", function(e) {
      if (html.getAttribute("data-theme-stored") === "true") return;
      fetch("/api/theme/system", {
        method: "POST",
        credentials: "same-origin",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ preference: e.matches ? "light" : "dark", current: html.getAttribute("data-theme") })
      })
        .then(function(r) { return r.json(); })
        .then(function(body) { if (body.theme) applyTheme(body.theme, false); })
        .catch(function() {});
    });
  }

  // ===== Comment widget =====
  var giscus = document.getElementById("giscusContainer");
  var loader = document.getElementById("giscusScript");
  if (giscus && loader) {
    var tpl = loader.content.querySelector("script");
    var script = document.createElement("script");
    for (var i = 0; i < tpl.attributes.length; i++) {
      script.setAttribute(tpl.attributes[i].name, tpl.attributes[i].value);
    }
    script.setAttribute("data-theme", html.getAttribute("data-theme") === "light"
      ? giscus.getAttribute("data-light-theme")
      : giscus.getAttribute("data-dark-theme"));
    script.async = true;
    giscus.appendChild(script);
  }
  if (giscus) {
    new MutationObserver(function(mutations) {
      mutations.forEach(function(m) {
        if (m.attributeName !== "data-theme") return;
        var iframe = document.querySelector("iframe.giscus-frame");
        if (!iframe) return;
        var raw = html.getAttribute("data-theme") === "light"
          ? giscus.getAttribute("data-light-message")
          : giscus.getAttribute("data-dark-message");
        iframe.contentWindow.postMessage(JSON.parse(raw), giscus.getAttribute("data-origin"));
      });
    }).observe(html, { attributes: true });
  }

  // ===== Live search =====
  var list = document.getElementById("postsList");
  var input = document.getElementById("searchInput");
  var tags = document.getElementById("tagsContainer");
  var loading = document.getElementById("loadingState");
  if (!list || !window.WebSocket) return;

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws/search" + location.search);
  var live = false;

  function send(msg) {
    if (!live) return false;
    ws.send(JSON.stringify(msg));
    return true;
  }

  ws.onopen = function() { live = true; };
  ws.onclose = function() { live = false; };
  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (loading) loading.hidden = true;
    if (msg.type === "error") {
      console.error("search:", msg.message);
      return;
    }
    list.innerHTML = msg.html;
    list.setAttribute("data-count", msg.count);
    if (tags) {
      tags.querySelectorAll(".tag").forEach(function(a) {
        a.classList.toggle("active", a.getAttribute("data-tag") === msg.active_tag);
      });
    }
    var params = new URLSearchParams();
    if (msg.active_tag) params.set("tag", msg.active_tag);
    if (msg.query) params.set("q", msg.query);
    var qs = params.toString();
    history.replaceState(null, "", qs ? "/?" + qs : "/");
  };

  if (input) {
    input.addEventListener("input", function() {
      if (send({ type: "query", query: input.value }) && loading) loading.hidden = false;
    });
    input.addEventListener("keydown", function(e) {
      if (e.key === "Escape") {
        input.value = "";
        send({ type: "clear" });
        input.blur();
      }
    });
    input.form.addEventListener("submit", function(e) {
      if (live) e.preventDefault();
    });
    document.addEventListener("keydown", function(e) {
      if ((e.ctrlKey || e.metaKey) && e.key === "k") {
        e.preventDefault();
        input.focus();
      }
    });
  }

  if (tags) {
    tags.addEventListener("click", function(e) {
      var a = e.target.closest(".tag");
      if (!a || !live) return;
      e.preventDefault();
      send({ type: "tag", tag: a.getAttribute("data-tag") });
    });
  }
})();
`
