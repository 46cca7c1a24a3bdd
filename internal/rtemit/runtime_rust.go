package rtemit

// depylerValueSource is the tagged-union runtime with Python operator
// semantics. It is appended verbatim to crates that lower any
// Unknown-typed expression.
const depylerValueSource = `
// ---- runtime support (generated) ----

#[derive(Debug, Clone, PartialEq)]
pub enum DepylerValue {
    Int(i64),
    Float(f64),
    Str(String),
    Bool(bool),
    None,
    List(Vec<DepylerValue>),
    Dict(Vec<(DepylerValue, DepylerValue)>),
    Tuple(Vec<DepylerValue>),
}

impl DepylerValue {
    pub fn is_true(&self) -> bool {
        match self {
            DepylerValue::None => false,
            DepylerValue::Bool(b) => *b,
            DepylerValue::Int(n) => *n != 0,
            DepylerValue::Float(x) => *x != 0.0,
            DepylerValue::Str(s) => !s.is_empty(),
            DepylerValue::List(v) | DepylerValue::Tuple(v) => !v.is_empty(),
            DepylerValue::Dict(m) => !m.is_empty(),
        }
    }

    pub fn len(&self) -> i64 {
        match self {
            DepylerValue::Str(s) => s.chars().count() as i64,
            DepylerValue::List(v) | DepylerValue::Tuple(v) => v.len() as i64,
            DepylerValue::Dict(m) => m.len() as i64,
            _ => 0,
        }
    }

    pub fn to_i64(&self) -> i64 {
        match self {
            DepylerValue::Int(n) => *n,
            DepylerValue::Float(x) => *x as i64,
            DepylerValue::Bool(b) => *b as i64,
            DepylerValue::Str(s) => s.trim().parse().unwrap_or(0),
            _ => 0,
        }
    }

    pub fn to_f64(&self) -> f64 {
        match self {
            DepylerValue::Int(n) => *n as f64,
            DepylerValue::Float(x) => *x,
            DepylerValue::Bool(b) => (*b as i64) as f64,
            DepylerValue::Str(s) => s.trim().parse().unwrap_or(0.0),
            _ => 0.0,
        }
    }

    pub fn to_str(&self) -> String {
        format!("{}", self)
    }

    pub fn get(&self, key: &DepylerValue) -> Option<DepylerValue> {
        if let DepylerValue::Dict(m) = self {
            m.iter().find(|(k, _)| k == key).map(|(_, v)| v.clone())
        } else {
            None
        }
    }

    pub fn keys(&self) -> Vec<DepylerValue> {
        match self {
            DepylerValue::Dict(m) => m.iter().map(|(k, _)| k.clone()).collect(),
            _ => Vec::new(),
        }
    }

    pub fn values(&self) -> Vec<DepylerValue> {
        match self {
            DepylerValue::Dict(m) => m.iter().map(|(_, v)| v.clone()).collect(),
            _ => Vec::new(),
        }
    }

    pub fn items(&self) -> Vec<(DepylerValue, DepylerValue)> {
        match self {
            DepylerValue::Dict(m) => m.clone(),
            _ => Vec::new(),
        }
    }

    pub fn append(&mut self, v: DepylerValue) {
        if let DepylerValue::List(xs) = self {
            xs.push(v);
        }
    }

    pub fn py_contains(&self, item: &DepylerValue) -> bool {
        match self {
            DepylerValue::List(v) | DepylerValue::Tuple(v) => v.contains(item),
            DepylerValue::Dict(m) => m.iter().any(|(k, _)| k == item),
            DepylerValue::Str(s) => {
                if let DepylerValue::Str(sub) = item {
                    s.contains(sub.as_str())
                } else {
                    false
                }
            }
            _ => false,
        }
    }

    pub fn py_index(self, idx: DepylerValue) -> DepylerValue {
        match (&self, &idx) {
            (DepylerValue::List(v), DepylerValue::Int(i))
            | (DepylerValue::Tuple(v), DepylerValue::Int(i)) => {
                let n = v.len() as i64;
                let j = if *i < 0 { i + n } else { *i };
                if j >= 0 && j < n {
                    v[j as usize].clone()
                } else {
                    DepylerValue::None
                }
            }
            (DepylerValue::Str(s), DepylerValue::Int(i)) => {
                let chars: Vec<char> = s.chars().collect();
                let n = chars.len() as i64;
                let j = if *i < 0 { i + n } else { *i };
                if j >= 0 && j < n {
                    DepylerValue::Str(chars[j as usize].to_string())
                } else {
                    DepylerValue::None
                }
            }
            (DepylerValue::Dict(_), _) => self.get(&idx).unwrap_or(DepylerValue::None),
            _ => DepylerValue::None,
        }
    }

    pub fn py_add(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) => DepylerValue::Int(a.wrapping_add(b)),
            (DepylerValue::Str(a), DepylerValue::Str(b)) => DepylerValue::Str(a + &b),
            (DepylerValue::List(mut a), DepylerValue::List(b)) => {
                a.extend(b);
                DepylerValue::List(a)
            }
            (a, b) => DepylerValue::Float(a.to_f64() + b.to_f64()),
        }
    }

    pub fn py_sub(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) => DepylerValue::Int(a.wrapping_sub(b)),
            (a, b) => DepylerValue::Float(a.to_f64() - b.to_f64()),
        }
    }

    pub fn py_mul(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) => DepylerValue::Int(a.wrapping_mul(b)),
            (DepylerValue::Str(s), DepylerValue::Int(n))
            | (DepylerValue::Int(n), DepylerValue::Str(s)) => {
                DepylerValue::Str(s.repeat(n.max(0) as usize))
            }
            (DepylerValue::List(v), DepylerValue::Int(n))
            | (DepylerValue::Int(n), DepylerValue::List(v)) => {
                let mut out = Vec::new();
                for _ in 0..n.max(0) {
                    out.extend(v.iter().cloned());
                }
                DepylerValue::List(out)
            }
            (a, b) => DepylerValue::Float(a.to_f64() * b.to_f64()),
        }
    }

    pub fn py_div(self, rhs: DepylerValue) -> DepylerValue {
        let b = rhs.to_f64();
        if b == 0.0 {
            return DepylerValue::Float(f64::NAN);
        }
        DepylerValue::Float(self.to_f64() / b)
    }

    pub fn py_floordiv(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) => {
                if b == 0 {
                    return DepylerValue::Int(0);
                }
                let q = a / b;
                let r = a % b;
                DepylerValue::Int(if r != 0 && (r < 0) != (b < 0) { q - 1 } else { q })
            }
            (a, b) => {
                let d = b.to_f64();
                if d == 0.0 {
                    DepylerValue::Float(f64::NAN)
                } else {
                    DepylerValue::Float((a.to_f64() / d).floor())
                }
            }
        }
    }

    pub fn py_mod(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) => {
                if b == 0 {
                    return DepylerValue::Int(0);
                }
                let r = a % b;
                DepylerValue::Int(if r != 0 && (r < 0) != (b < 0) { r + b } else { r })
            }
            (a, b) => {
                let d = b.to_f64();
                if d == 0.0 {
                    return DepylerValue::Float(f64::NAN);
                }
                let r = a.to_f64() % d;
                DepylerValue::Float(if r != 0.0 && (r < 0.0) != (d < 0.0) { r + d } else { r })
            }
        }
    }

    pub fn py_pow(self, rhs: DepylerValue) -> DepylerValue {
        match (self, rhs) {
            (DepylerValue::Int(a), DepylerValue::Int(b)) if b >= 0 => {
                DepylerValue::Int((a as f64).powi(b as i32) as i64)
            }
            (a, b) => DepylerValue::Float(a.to_f64().powf(b.to_f64())),
        }
    }

    pub fn parse_json(text: &str) -> DepylerValue {
        let trimmed = text.trim();
        if trimmed == "null" {
            return DepylerValue::None;
        }
        if trimmed == "true" {
            return DepylerValue::Bool(true);
        }
        if trimmed == "false" {
            return DepylerValue::Bool(false);
        }
        if let Ok(n) = trimmed.parse::<i64>() {
            return DepylerValue::Int(n);
        }
        if let Ok(x) = trimmed.parse::<f64>() {
            return DepylerValue::Float(x);
        }
        if trimmed.len() >= 2 && trimmed.starts_with('"') && trimmed.ends_with('"') {
            return DepylerValue::Str(trimmed[1..trimmed.len() - 1].to_string());
        }
        DepylerValue::Str(trimmed.to_string())
    }
}

impl std::fmt::Display for DepylerValue {
    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {
        match self {
            DepylerValue::Int(n) => write!(f, "{}", n),
            DepylerValue::Float(x) => {
                if x.fract() == 0.0 && x.is_finite() {
                    write!(f, "{:.1}", x)
                } else {
                    write!(f, "{}", x)
                }
            }
            DepylerValue::Str(s) => write!(f, "{}", s),
            DepylerValue::Bool(b) => write!(f, "{}", if *b { "True" } else { "False" }),
            DepylerValue::None => write!(f, "None"),
            DepylerValue::List(v) => {
                write!(f, "[")?;
                for (i, x) in v.iter().enumerate() {
                    if i > 0 {
                        write!(f, ", ")?;
                    }
                    write!(f, "{}", x)?;
                }
                write!(f, "]")
            }
            DepylerValue::Tuple(v) => {
                write!(f, "(")?;
                for (i, x) in v.iter().enumerate() {
                    if i > 0 {
                        write!(f, ", ")?;
                    }
                    write!(f, "{}", x)?;
                }
                if v.len() == 1 {
                    write!(f, ",")?;
                }
                write!(f, ")")
            }
            DepylerValue::Dict(m) => {
                write!(f, "{{")?;
                for (i, (k, v)) in m.iter().enumerate() {
                    if i > 0 {
                        write!(f, ", ")?;
                    }
                    write!(f, "{}: {}", k, v)?;
                }
                write!(f, "}}")
            }
        }
    }
}

impl From<i64> for DepylerValue {
    fn from(v: i64) -> Self {
        DepylerValue::Int(v)
    }
}

impl From<f64> for DepylerValue {
    fn from(v: f64) -> Self {
        DepylerValue::Float(v)
    }
}

impl From<bool> for DepylerValue {
    fn from(v: bool) -> Self {
        DepylerValue::Bool(v)
    }
}

impl From<String> for DepylerValue {
    fn from(v: String) -> Self {
        DepylerValue::Str(v)
    }
}

impl From<&str> for DepylerValue {
    fn from(v: &str) -> Self {
        DepylerValue::Str(v.to_string())
    }
}

impl Eq for DepylerValue {}

impl std::hash::Hash for DepylerValue {
    fn hash<H: std::hash::Hasher>(&self, state: &mut H) {
        std::mem::discriminant(self).hash(state);
        match self {
            DepylerValue::Int(n) => n.hash(state),
            DepylerValue::Float(x) => x.to_bits().hash(state),
            DepylerValue::Str(s) => s.hash(state),
            DepylerValue::Bool(b) => b.hash(state),
            DepylerValue::None => {}
            DepylerValue::List(v) | DepylerValue::Tuple(v) => v.hash(state),
            DepylerValue::Dict(m) => m.hash(state),
        }
    }
}

impl IntoIterator for DepylerValue {
    type Item = DepylerValue;
    type IntoIter = std::vec::IntoIter<DepylerValue>;

    // Iteration follows Python: list and tuple yield items, dicts
    // yield keys, strings yield one-char strings.
    fn into_iter(self) -> Self::IntoIter {
        match self {
            DepylerValue::List(v) | DepylerValue::Tuple(v) => v.into_iter(),
            DepylerValue::Dict(m) => m
                .into_iter()
                .map(|(k, _)| k)
                .collect::<Vec<_>>()
                .into_iter(),
            DepylerValue::Str(s) => s
                .chars()
                .map(|c| DepylerValue::Str(c.to_string()))
                .collect::<Vec<_>>()
                .into_iter(),
            _ => Vec::new().into_iter(),
        }
    }
}

pub trait PyOps {
    fn py_add(self, rhs: DepylerValue) -> DepylerValue;
    fn py_sub(self, rhs: DepylerValue) -> DepylerValue;
    fn py_mul(self, rhs: DepylerValue) -> DepylerValue;
    fn py_div(self, rhs: DepylerValue) -> DepylerValue;
    fn py_floordiv(self, rhs: DepylerValue) -> DepylerValue;
    fn py_mod(self, rhs: DepylerValue) -> DepylerValue;
    fn py_pow(self, rhs: DepylerValue) -> DepylerValue;
}

impl<T: Into<DepylerValue>> PyOps for T {
    fn py_add(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_add(rhs)
    }
    fn py_sub(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_sub(rhs)
    }
    fn py_mul(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_mul(rhs)
    }
    fn py_div(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_div(rhs)
    }
    fn py_floordiv(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_floordiv(rhs)
    }
    fn py_mod(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_mod(rhs)
    }
    fn py_pow(self, rhs: DepylerValue) -> DepylerValue {
        self.into().py_pow(rhs)
    }
}
`

// depylerDateSource provides stdlib-only date types for strict mode,
// where chrono is off limits.
const depylerDateSource = `
#[derive(Debug, Clone, Copy, PartialEq)]
pub struct DepylerDate {
    pub year: i64,
    pub month: i64,
    pub day: i64,
}

#[derive(Debug, Clone, Copy, PartialEq)]
pub struct DepylerDateTime {
    pub epoch_secs: i64,
}

#[derive(Debug, Clone, Copy, PartialEq)]
pub struct DepylerDelta {
    pub secs: i64,
}

impl DepylerDateTime {
    pub fn now() -> Self {
        let secs = std::time::SystemTime::now()
            .duration_since(std::time::UNIX_EPOCH)
            .map(|d| d.as_secs() as i64)
            .unwrap_or(0);
        DepylerDateTime { epoch_secs: secs }
    }

    pub fn timestamp(&self) -> f64 {
        self.epoch_secs as f64
    }

    pub fn date(&self) -> DepylerDate {
        let days = self.epoch_secs.div_euclid(86400);
        DepylerDate::from_epoch_days(days)
    }

    pub fn isoformat(&self) -> String {
        let d = self.date();
        let rem = self.epoch_secs.rem_euclid(86400);
        format!(
            "{:04}-{:02}-{:02}T{:02}:{:02}:{:02}",
            d.year,
            d.month,
            d.day,
            rem / 3600,
            (rem % 3600) / 60,
            rem % 60
        )
    }

    pub fn strftime(&self, fmt: &str) -> String {
        let d = self.date();
        fmt.replace("%Y", &format!("{:04}", d.year))
            .replace("%m", &format!("{:02}", d.month))
            .replace("%d", &format!("{:02}", d.day))
    }

    pub fn weekday(&self) -> i64 {
        // 1970-01-01 was a Thursday; Python counts Monday as 0.
        (self.epoch_secs.div_euclid(86400) + 3).rem_euclid(7)
    }
}

impl DepylerDate {
    pub fn today() -> Self {
        DepylerDateTime::now().date()
    }

    fn from_epoch_days(days: i64) -> Self {
        // Civil-from-days conversion over the proleptic Gregorian
        // calendar.
        let z = days + 719468;
        let era = z.div_euclid(146097);
        let doe = z.rem_euclid(146097);
        let yoe = (doe - doe / 1460 + doe / 36524 - doe / 146096) / 365;
        let y = yoe + era * 400;
        let doy = doe - (365 * yoe + yoe / 4 - yoe / 100);
        let mp = (5 * doy + 2) / 153;
        let d = doy - (153 * mp + 2) / 5 + 1;
        let m = if mp < 10 { mp + 3 } else { mp - 9 };
        DepylerDate {
            year: if m <= 2 { y + 1 } else { y },
            month: m,
            day: d,
        }
    }

    pub fn isoformat(&self) -> String {
        format!("{:04}-{:02}-{:02}", self.year, self.month, self.day)
    }
}

impl DepylerDelta {
    pub fn new(secs: i64) -> Self {
        DepylerDelta { secs }
    }

    pub fn total_seconds(&self) -> f64 {
        self.secs as f64
    }
}
`
