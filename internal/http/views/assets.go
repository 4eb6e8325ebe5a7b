package views

const (
	plotlyScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	htmxScriptURL   = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"
)

const pageStyle = `
:root { --bg: #F8FAFC; --card: #FFFFFF; --border: #E2E8F0; --text: #0F172A; --muted: #64748B; --accent: #4F46E5; }
* { box-sizing: border-box; }
body { margin: 0; background: var(--bg); color: var(--text); font: 14px/1.4 -apple-system, BlinkMacSystemFont, 'Inter', 'Segoe UI', sans-serif; }
.app-header { display: flex; flex-wrap: wrap; align-items: center; justify-content: space-between; gap: 12px; padding: 16px 24px; background: #1E293B; color: #F8FAFC; }
.app-header h1 { margin: 0; font-size: 18px; }
.badge { display: inline-block; margin-left: 6px; padding: 2px 10px; border-radius: 999px; background: rgba(255,255,255,.12); font-size: 12px; }
main { padding: 16px 24px 40px; }
.filters { display: flex; flex-wrap: wrap; align-items: flex-start; gap: 16px; margin-bottom: 16px; }
.filter-group { display: flex; flex-direction: column; gap: 6px; }
.filter-label { color: var(--muted); font-size: 11px; font-weight: 600; text-transform: uppercase; }
.chips { display: flex; flex-wrap: wrap; gap: 6px; }
.chip { padding: 4px 12px; border: 1px solid var(--border); border-radius: 999px; background: var(--card); color: var(--text); cursor: pointer; }
.chip.active { border-color: var(--accent); background: var(--accent); color: #FFFFFF; }
.btn { padding: 6px 14px; border: 1px solid var(--border); border-radius: 6px; background: var(--card); cursor: pointer; }
.kpis { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; margin-bottom: 16px; }
.kpi { padding: 12px 16px; border: 1px solid var(--border); border-radius: 8px; background: var(--card); }
.kpi-label { display: block; color: var(--muted); font-size: 12px; }
.kpi-value { display: block; font-size: 24px; font-weight: 700; }
.kpi-critical .kpi-value { color: #AB1A1A; }
.kpi-high .kpi-value { color: #CE5019; }
.kpi-fixed .kpi-value { color: #10B981; }
.chart-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(420px, 1fr)); gap: 16px; }
.card { padding: 12px 16px; border: 1px solid var(--border); border-radius: 8px; background: var(--card); }
.card-wide { grid-column: 1 / -1; }
.card-header { display: flex; align-items: center; justify-content: space-between; }
.card-header h2 { margin: 0 0 8px; font-size: 14px; }
.card-action { color: var(--muted); font-size: 12px; }
.chart { min-height: 320px; }
.chart-empty { display: flex; align-items: center; justify-content: center; min-height: 320px; color: var(--muted); }
.filtered-count { color: var(--muted); font-size: 12px; }
.upload { max-width: 520px; margin: 48px auto; padding: 24px; border: 1px dashed var(--border); border-radius: 8px; background: var(--card); text-align: center; }
.upload-inline { margin-top: 24px; color: var(--muted); font-size: 12px; }
.upload-error { color: #EF4444; font-weight: 600; }
.toast { position: fixed; right: 24px; bottom: 24px; padding: 12px 16px; border-radius: 8px; background: #1E293B; color: #F8FAFC; }
.toast-error { background: #B91C1C; }
.toast-success { background: #047857; }
.toast-warning { background: #B45309; }
`

const chartScript = `
(function () {
  var BASE_LAYOUT = {
    paper_bgcolor: 'transparent',
    plot_bgcolor: 'transparent',
    font: { family: "-apple-system, BlinkMacSystemFont, 'Inter', 'Segoe UI', sans-serif", size: 11, color: '#475569' },
    xaxis: { gridcolor: '#F1F5F9', zerolinecolor: '#E2E8F0', linecolor: '#E2E8F0' },
    yaxis: { gridcolor: '#F1F5F9', zerolinecolor: '#E2E8F0', linecolor: '#E2E8F0' },
    legend: { bgcolor: 'transparent', bordercolor: 'transparent' },
    hoverlabel: { bgcolor: '#1E293B', bordercolor: '#1E293B', font: { color: '#F8FAFC', size: 12 } }
  };
  var PLOTLY_CONFIG = {
    responsive: true,
    displayModeBar: true,
    modeBarButtonsToRemove: ['select2d', 'lasso2d', 'autoScale2d', 'toggleSpikelines'],
    displaylogo: false,
    toImageButtonOptions: { format: 'png', scale: 2 }
  };
  function layout(overrides) {
    var out = Object.assign({}, BASE_LAYOUT, overrides);
    out.xaxis = Object.assign({}, BASE_LAYOUT.xaxis, overrides.xaxis || {});
    out.yaxis = Object.assign({}, BASE_LAYOUT.yaxis, overrides.yaxis || {});
    return out;
  }
  function draw(root) {
    if (!window.Plotly || !root.querySelectorAll) return;
    root.querySelectorAll('script[type="application/json"][data-chart]').forEach(function (node) {
      var el = document.getElementById(node.getAttribute('data-chart'));
      if (!el) return;
      try {
        var fig = JSON.parse(node.textContent);
        Plotly.react(el, fig.data || [], layout(fig.layout || {}), PLOTLY_CONFIG);
      } catch (err) {
        console.warn('chart render failed', el.id, err);
      }
    });
  }
  document.addEventListener('DOMContentLoaded', function () { draw(document); });
  document.addEventListener('htmx:afterSettle', function (evt) { draw(evt.target); });
})();
`
