package server

// clientScript forwards DOM events to the session and swaps in the
// re-rendered page, restoring focus and caret.
const clientScript = `(function () {
  var session = document.currentScript.dataset.session;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws?session=" + encodeURIComponent(session));

  function send(target, type) {
    if (!target || !target.dataset.eid) return;
    var msg = { id: target.dataset.eid, type: type };
    if (target.tagName === "INPUT" || target.tagName === "TEXTAREA") {
      msg.value = target.value;
      if (typeof target.selectionStart === "number") {
        msg.selStart = target.selectionStart;
        msg.selEnd = target.selectionEnd;
      }
    }
    if (target.type === "checkbox") msg.checked = target.checked;
    ws.send(JSON.stringify(msg));
  }

  document.addEventListener("input", function (e) { send(e.target, "input"); });
  document.addEventListener("change", function (e) { send(e.target, "change"); });
  document.addEventListener("click", function (e) { send(e.target.closest("li[data-eid]"), "click"); });
  document.addEventListener("submit", function (e) { e.preventDefault(); send(e.target, "submit"); });

  ws.onmessage = function (ev) {
    var reply = JSON.parse(ev.data);
    if (reply.error) { console.error(reply.error); return; }
    var active = document.activeElement;
    var id = active && active.dataset ? active.dataset.eid : null;
    var start = active && active.selectionStart, end = active && active.selectionEnd;
    document.querySelector("main").outerHTML = reply.html;
    if (!id) return;
    var next = document.querySelector('[data-eid="' + id + '"]');
    if (!next) return;
    next.focus();
    try { next.setSelectionRange(start, end); } catch (_) {}
  };
})();`
