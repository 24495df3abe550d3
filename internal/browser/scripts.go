package browser

// probeScript re-creates the controls whose behaviour differs between
// engines and reports what this engine does with them.
const probeScript = `(() => {
  const select = document.createElement('select');
  const input = document.createElement('input');
  const option = select.appendChild(document.createElement('option'));
  const probe = document.createElement('div');
  input.type = 'checkbox';
  probe.className = 'probe';
  const on = input.value !== '';
  select.disabled = true;
  const root = document.documentElement;
  return {
    on: on,
    disabled: !option.disabled,
    attributes: probe.getAttribute('className') === null,
    xml: root ? root.nodeName !== 'HTML' : false,
    html: document.contentType === 'text/html'
  };
})()`

// syncStateScript mirrors control properties set by scripts or the user
// into attributes so a DOM snapshot carries them.
const syncStateScript = `(() => {
  for (const el of document.querySelectorAll('input, textarea, select')) {
    if (el.tagName === 'SELECT') {
      for (const o of el.options) o.toggleAttribute('selected', o.selected);
    } else if (el.type === 'checkbox' || el.type === 'radio') {
      el.toggleAttribute('checked', el.checked);
    } else if (el.tagName === 'TEXTAREA') {
      el.textContent = el.value;
    } else if (el.type !== 'file') {
      el.setAttribute('value', el.value);
    }
  }
  return true;
})()`
