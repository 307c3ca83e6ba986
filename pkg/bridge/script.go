package bridge

// ClientScript is the page-side half of the bridge protocol. Embed it
// in any page (with __QSTATE_WS__ replaced by the bridge endpoint URL)
// to mirror the tab's navigation state into a server-side Bridge.
//
// The script says hello with the current URL, applies replace commands
// via history.replaceState, and reports every successful navigation
// back, including popstate (back/forward).
const ClientScript = `(function () {
  var ws = new WebSocket(__QSTATE_WS__);
  var report = function () {
    ws.send(JSON.stringify({ type: "navigated", url: location.href }));
  };
  ws.onopen = function () {
    ws.send(JSON.stringify({ type: "hello", url: location.href }));
  };
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "replace") {
      history.replaceState(null, "", msg.url);
      report();
    }
  };
  window.addEventListener("popstate", report);
  // Pages that call history.replaceState themselves invoke this so
  // the server still hears about the edit.
  window.qstateReport = function () {
    if (ws.readyState === WebSocket.OPEN) report();
  };
})();`
